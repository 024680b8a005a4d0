// Package authz is the permission model: a static table mapping roles to
// capabilities, evaluated per check with no state and no side effects.
package authz

// Role is one of the closed set of roles known to the permission model.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
	RoleGuest   Role = "guest"
)

// Capability names follow "<resource>:<action>".
type Capability string

const (
	CapBuildingCreate Capability = "building:create"
	CapBuildingRead   Capability = "building:read"
	CapBuildingUpdate Capability = "building:update"
	CapBuildingDelete Capability = "building:delete"

	CapFloorCreate Capability = "floor:create"
	CapFloorRead   Capability = "floor:read"
	CapFloorUpdate Capability = "floor:update"
	CapFloorDelete Capability = "floor:delete"

	CapRoomCreate Capability = "room:create"
	CapRoomRead   Capability = "room:read"
	CapRoomUpdate Capability = "room:update"
	CapRoomDelete Capability = "room:delete"

	CapUserCreate Capability = "user:create"
	CapUserRead   Capability = "user:read"
	CapUserUpdate Capability = "user:update"
	CapUserDelete Capability = "user:delete"

	CapScheduleCreate Capability = "schedule:create"
	CapScheduleRead   Capability = "schedule:read"
	CapScheduleUpdate Capability = "schedule:update"
	CapScheduleDelete Capability = "schedule:delete"

	CapTicketCreate Capability = "ticket:create"
	CapTicketRead   Capability = "ticket:read"
	CapTicketUpdate Capability = "ticket:update"
	CapTicketDelete Capability = "ticket:delete"

	CapAttendanceCreate Capability = "attendance:create"
	CapAttendanceRead   Capability = "attendance:read"

	CapStorageCreate Capability = "storage:create"
	CapStorageRead   Capability = "storage:read"
	CapStorageUpdate Capability = "storage:update"
	CapStorageDelete Capability = "storage:delete"

	CapDeploymentCreate Capability = "deployment:create"
	CapDeploymentRead   Capability = "deployment:read"
	CapDeploymentUpdate Capability = "deployment:update"
	CapDeploymentDelete Capability = "deployment:delete"

	CapLogRead Capability = "log:read"
)

// allCapabilities lists every capability. Admin is granted the full set.
var allCapabilities = []Capability{
	CapBuildingCreate, CapBuildingRead, CapBuildingUpdate, CapBuildingDelete,
	CapFloorCreate, CapFloorRead, CapFloorUpdate, CapFloorDelete,
	CapRoomCreate, CapRoomRead, CapRoomUpdate, CapRoomDelete,
	CapUserCreate, CapUserRead, CapUserUpdate, CapUserDelete,
	CapScheduleCreate, CapScheduleRead, CapScheduleUpdate, CapScheduleDelete,
	CapTicketCreate, CapTicketRead, CapTicketUpdate, CapTicketDelete,
	CapAttendanceCreate, CapAttendanceRead,
	CapStorageCreate, CapStorageRead, CapStorageUpdate, CapStorageDelete,
	CapDeploymentCreate, CapDeploymentRead, CapDeploymentUpdate, CapDeploymentDelete,
	CapLogRead,
}

// managerCapabilities: technicians manage equipment, rooms, schedules and
// tickets but not user accounts, and cannot delete structural records.
var managerCapabilities = []Capability{
	CapBuildingCreate, CapBuildingRead, CapBuildingUpdate,
	CapFloorCreate, CapFloorRead, CapFloorUpdate,
	CapRoomCreate, CapRoomRead, CapRoomUpdate,
	CapUserRead,
	CapScheduleCreate, CapScheduleRead, CapScheduleUpdate, CapScheduleDelete,
	CapTicketCreate, CapTicketRead, CapTicketUpdate, CapTicketDelete,
	CapAttendanceCreate, CapAttendanceRead,
	CapStorageCreate, CapStorageRead, CapStorageUpdate, CapStorageDelete,
	CapDeploymentCreate, CapDeploymentRead, CapDeploymentUpdate,
	CapLogRead,
}

// memberCapabilities: regular users can browse and report, not administer.
var memberCapabilities = []Capability{
	CapBuildingRead,
	CapFloorRead,
	CapRoomRead,
	CapScheduleRead,
	CapTicketCreate, CapTicketRead,
	CapAttendanceCreate,
	CapStorageRead,
}

// guestCapabilities: anonymous callers can view schedules and submit
// attendance, nothing else.
var guestCapabilities = []Capability{
	CapScheduleRead,
	CapAttendanceCreate,
}

var grants = map[Role]map[Capability]struct{}{
	RoleAdmin:   capSet(allCapabilities),
	RoleManager: capSet(managerCapabilities),
	RoleMember:  capSet(memberCapabilities),
	RoleGuest:   capSet(guestCapabilities),
}

func capSet(caps []Capability) map[Capability]struct{} {
	set := make(map[Capability]struct{}, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// roleAliases maps legacy role names seen in older data to the closed enum.
var roleAliases = map[string]Role{
	"admin":      RoleAdmin,
	"manager":    RoleManager,
	"technician": RoleManager,
	"moderator":  RoleManager,
	"member":     RoleMember,
	"user":       RoleMember,
	"viewer":     RoleMember,
	"guest":      RoleGuest,
}

// ParseRole normalizes a stored role string to the closed enum. Unknown
// values are returned unchanged; they have no grant entry, so every
// capability check against them denies.
func ParseRole(s string) Role {
	if r, ok := roleAliases[s]; ok {
		return r
	}
	return Role(s)
}

// Known reports whether the role is part of the closed enum.
func Known(role Role) bool {
	_, ok := grants[role]
	return ok
}

// Can reports whether the role is granted the capability. Unknown roles and
// unknown capabilities deny.
func Can(role Role, cap Capability) bool {
	set, ok := grants[role]
	if !ok {
		return false
	}
	_, ok = set[cap]
	return ok
}

// IsAdmin reports whether the role is admin.
func IsAdmin(role Role) bool { return role == RoleAdmin }

// IsTechnician reports whether the role is manager (legacy name: technician).
func IsTechnician(role Role) bool { return role == RoleManager }

// IsMember reports whether the role is member.
func IsMember(role Role) bool { return role == RoleMember }

// CanManage reports whether the role administers resources (admin or manager).
func CanManage(role Role) bool { return role == RoleAdmin || role == RoleManager }

// CanShowCreateButton reports whether the role may create the given resource
// kind. UI convenience wrapper over the grant table.
func CanShowCreateButton(role Role, resource string) bool {
	return Can(role, Capability(resource+":create"))
}

// CanShowEditButton reports whether the role may update the given resource kind.
func CanShowEditButton(role Role, resource string) bool {
	return Can(role, Capability(resource+":update"))
}

// CanShowDeleteButton reports whether the role may delete the given resource kind.
func CanShowDeleteButton(role Role, resource string) bool {
	return Can(role, Capability(resource+":delete"))
}
