// Package configcmder provides the config command for managing persistent
// cogniz configuration stored in the .cogniz/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent cogniz configuration.

Configuration is stored as config.toml in the .cogniz/ directory. The
connection keys are normally written by 'cogniz configure'; the remaining
keys provide defaults for command flags. CLI flags always take precedence
over config file values.

Keys use dotted notation matching the TOML section structure:
  connection.base_url, connection.project_id, connection.project_name,
  session.project_id, session.project_name,
  client.platform, client.recent_limit, cache.ttl_seconds,
  serve.listen, serve.log_file,
  telemetry.provider, telemetry.brokers, telemetry.topic

Use subcommands to get, set, or list configuration values:
  cogniz config set <key> <value>    Set a configuration value
  cogniz config get <key>            Get a configuration value
  cogniz config list                 List all configuration values

Examples:
  cogniz config set client.recent_limit 20
  cogniz config set telemetry.provider kafka
  cogniz config get connection.base_url
  cogniz config list`

const configShortDesc string = "Manage persistent cogniz configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
