package dialect

// Message ids from the "common" MAVLink dialect, matching the constants
// already used by the serial actuator protocol this router replaces.
const (
	MsgHeartbeat                  = 0
	MsgSysStatus                  = 1
	MsgPing                       = 4
	MsgSetMode                    = 11
	MsgParamRequestRead            = 20
	MsgParamSet                    = 23
	MsgAttitude                    = 30
	MsgLocalPositionNED            = 32
	MsgMissionItem                 = 39
	MsgCommandLong                 = 76
	MsgCommandAck                  = 77
	MsgSetAttitudeTarget            = 82
	MsgSetPositionTargetLocalNED    = 84
)

// Common is the built-in dialect table covering the subset of MAVLink
// "common" messages this router needs target-addressing metadata for.
// Offsets are payload-relative, matching the field order MAVLink's C
// code generator produces (fields sorted by decreasing size, then
// declaration order).
var Common = New([]Entry{
	{ID: MsgHeartbeat, Name: "HEARTBEAT"},
	{ID: MsgSysStatus, Name: "SYS_STATUS"},
	{ID: MsgPing, Name: "PING", HasSystem: true, SystemOffset: 12, HasComponent: true, ComponentOffset: 13},
	{ID: MsgSetMode, Name: "SET_MODE", HasSystem: true, SystemOffset: 4},
	{ID: MsgParamRequestRead, Name: "PARAM_REQUEST_READ", HasSystem: true, SystemOffset: 2, HasComponent: true, ComponentOffset: 3},
	{ID: MsgParamSet, Name: "PARAM_SET", HasSystem: true, SystemOffset: 4, HasComponent: true, ComponentOffset: 5},
	{ID: MsgAttitude, Name: "ATTITUDE"},
	{ID: MsgLocalPositionNED, Name: "LOCAL_POSITION_NED"},
	{ID: MsgMissionItem, Name: "MISSION_ITEM", HasSystem: true, SystemOffset: 32, HasComponent: true, ComponentOffset: 33},
	{ID: MsgCommandLong, Name: "COMMAND_LONG", HasSystem: true, SystemOffset: 30, HasComponent: true, ComponentOffset: 31},
	{ID: MsgCommandAck, Name: "COMMAND_ACK"},
	{ID: MsgSetAttitudeTarget, Name: "SET_ATTITUDE_TARGET", HasSystem: true, SystemOffset: 36, HasComponent: true, ComponentOffset: 37},
	{ID: MsgSetPositionTargetLocalNED, Name: "SET_POSITION_TARGET_LOCAL_NED", HasSystem: true, SystemOffset: 50, HasComponent: true, ComponentOffset: 51},
})
