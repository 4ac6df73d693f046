package core

const (
	RequesterTokenCtxKey = "cs-requesterToken"
	RequesterIdCtxKey    = "cs-requesterId"
)

const (
	// OwnerDM marks a character that belongs to the game master of the server.
	OwnerDM = "DM"
)

// PermissionManageRoles is the provider permission bit that grants admin rights.
const PermissionManageRoles int64 = 0x00000008

// ownership change targets accepted by PATCH /characters/:id
const (
	OwnerTargetNull = "null"
	OwnerTargetMe   = "@me"
	OwnerTargetDM   = OwnerDM
)
