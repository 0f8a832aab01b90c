package usecase

// ToolName is the closed set of agent tools served by this backend.
type ToolName string

const (
	ToolIdentifyCustomer ToolName = "identify_customer"
	ToolIdentifyVehicle  ToolName = "identify_vehicle"
)

// ParseToolName accepts the snake_case tool names and their kebab-case route aliases.
func ParseToolName(raw string) (ToolName, error) {
	switch raw {
	case "identify_customer", "identify-customer":
		return ToolIdentifyCustomer, nil
	case "identify_vehicle", "identify-vehicle":
		return ToolIdentifyVehicle, nil
	}
	return "", &ToolNotFoundError{Tool: raw}
}
