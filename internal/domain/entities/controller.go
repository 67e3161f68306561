package entities

import "github.com/spf13/cobra"

// ControllerBind is the Cobra metadata a controller contributes.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
	Args  cobra.PositionalArgs
}

// Controller is a CLI entrypoint backed by a domain command.
type Controller interface {
	GetBind() ControllerBind
	Execute(cmd *cobra.Command, args []string) error
}
