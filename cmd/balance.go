package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seededlabs/seedpool/logx"
)

var balanceCmd = &cobra.Command{
	Use:   "balance <owner>",
	Short: "Show wallet, staked and pending reward balances for a participant",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildApp()
		if err != nil {
			logx.Error("CLI", "balance failed:", err)
			return
		}
		defer app.close()

		balances, err := app.engine.QueryBalances(args[0])
		if err != nil {
			logx.Error("CLI", "balance failed:", err)
			return
		}

		fmt.Printf("Balances for %s\n", balances.Owner)
		fmt.Printf("  wallet:         %s\n", balances.WalletBalance.Dec())
		fmt.Printf("  staked:         %s\n", balances.StakedAmount.Dec())
		fmt.Printf("  pending reward: %s\n", balances.PendingReward.Dec())
		fmt.Printf("  custody total:  %s\n", balances.CustodyTotal.Dec())
	},
}

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Show pool record, custody balance and total staked",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildApp()
		if err != nil {
			logx.Error("CLI", "pool failed:", err)
			return
		}
		defer app.close()

		info, err := app.engine.Pool()
		if err != nil {
			logx.Error("CLI", "pool failed:", err)
			return
		}

		fmt.Printf("Pool %s\n", info.ProtocolName)
		fmt.Printf("  record address:  %s\n", info.PoolAddress)
		fmt.Printf("  authority:       %s\n", info.Authority)
		fmt.Printf("  custody account: %s\n", info.CustodyAccount)
		fmt.Printf("  asset mint:      %s\n", info.AssetMint)
		fmt.Printf("  custody balance: %s\n", info.CustodyBalance.Dec())
		fmt.Printf("  total staked:    %s\n", info.TotalStaked.Dec())
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(poolCmd)
}
