package cmd

import (
	"github.com/huangsam/airspot/internal/mcp"
	"github.com/huangsam/airspot/internal/realtime"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Airspot MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents query station statistics,
aggregates, WHO compliance, the station comparison and simulated readings.

Logs go to stderr so stdout stays reserved for the protocol.

Examples:
  # Serve the bundled data files
  airspot mcp --data-dir ./data

  # Serve readings imported into PostgreSQL
  airspot mcp --source database --db-backend postgresql --db-connect "host=localhost dbname=airspot"`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ds, err := loadDataset(rootCtx)
		if err != nil {
			return err
		}
		sim, err := realtime.NewSimulator(ds)
		if err != nil {
			return err
		}
		return mcp.StartMCPServer(rootCtx, cfg, ds, sim)
	},
}
