package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lasatanica/backoffice/internal/contract"
	"github.com/lasatanica/backoffice/internal/service"
)

var contractCmd = &cobra.Command{
	Use:   "contract",
	Short: "Show the embedded API contract",
	Long: `List the endpoints described by the embedded OpenAPI contract.

With --check, verify that every endpoint the client calls is described by
the contract and exit non-zero when one is missing.

Examples:
  # List the documented endpoints
  backoffice contract

  # Only endpoints of one tag
  backoffice contract --tag users

  # Verify the client against the contract
  backoffice contract --check
`,
	Args: cobra.NoArgs,
	RunE: runContract,
}

var (
	contractCheck bool
	contractTag   string
)

func init() {
	contractCmd.Flags().BoolVar(&contractCheck, "check", false, "verify client endpoints against the contract")
	contractCmd.Flags().StringVar(&contractTag, "tag", "", "only list endpoints with this tag")

	rootCmd.AddCommand(contractCmd)
}

func runContract(cmd *cobra.Command, args []string) error {
	c, err := contract.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load API contract: %w", err)
	}

	out := cmd.OutOrStdout()
	if contractCheck {
		missing := c.Check(service.Endpoints())
		if len(missing) > 0 {
			names := make([]string, len(missing))
			for i, e := range missing {
				names[i] = e.String()
			}
			return ContractMismatchError(names)
		}
		fmt.Fprintf(out, "%s %d client endpoints are described by %s\n",
			color.GreenString("✓"), len(service.Endpoints()), c.Title())
		return nil
	}

	var rows [][]string
	for _, e := range c.Endpoints() {
		if contractTag != "" && e.Tag != contractTag {
			continue
		}
		auth := "token"
		if !e.Auth {
			auth = "-"
		}
		rows = append(rows, []string{e.Method, e.Path, e.Tag, auth, e.Summary})
	}

	fmt.Fprintln(out, color.New(color.Bold).Sprint(c.Title()))
	return renderTable(out, []string{"Method", "Path", "Tag", "Auth", "Summary"}, rows)
}
