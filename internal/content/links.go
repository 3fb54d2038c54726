package content

// Deep links handed to the OS for the crisis toolkit's quick actions.
const (
	CrisisCallLink    = "tel:988"
	CrisisTextLink    = "sms:741741?body=HOME"
	EmergencyCallLink = "tel:911"
)

// Tool names recorded in crisis logs.
const (
	ToolHotlineCall = "hotline_call"
	ToolHotlineText = "hotline_text"
	ToolEmergency   = "emergency_call"
)
