package cmd

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/seededlabs/seedpool/logx"
)

var fundCmd = &cobra.Command{
	Use:   "fund-custody <amount>",
	Short: "Mint reward reserve into the custody account",
	Long: `Credits freshly issued tokens to the pool custody account so harvests
have a reserve beyond the staked principal. Restricted to the configured
authority.

Example:
  seedpool fund-custody 1_000_000_000_000`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		amount, err := uint256.FromDecimal(strings.ReplaceAll(args[0], "_", ""))
		if err != nil {
			logx.Error("CLI", "could not parse amount string:", err)
			return
		}
		if err := fundCustody(amount); err != nil {
			logx.Error("CLI", "fund-custody failed:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(fundCmd)
}

func fundCustody(amount *uint256.Int) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.close()

	if err := app.engine.FundCustody(app.cfg.Authority, amount); err != nil {
		return err
	}

	info, err := app.engine.Pool()
	if err != nil {
		return err
	}
	fmt.Printf("Funded custody %s with %s, balance now %s\n",
		info.CustodyAccount, amount.Dec(), info.CustodyBalance.Dec())
	return nil
}
