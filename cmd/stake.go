package cmd

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/seededlabs/seedpool/logx"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap <owner>",
	Short: "Create the stake record for a participant",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildApp()
		if err != nil {
			logx.Error("CLI", "bootstrap failed:", err)
			return
		}
		defer app.close()

		record, created, err := app.engine.BootstrapParticipant(args[0])
		if err != nil {
			logx.Error("CLI", "bootstrap failed:", err)
			return
		}
		if created {
			fmt.Printf("Bootstrapped %s (bump %d)\n", record.Owner, record.Bump)
		} else {
			fmt.Printf("Participant %s already bootstrapped, staked %s\n", record.Owner, record.StakedAmount.Dec())
		}
	},
}

var stakeCmd = &cobra.Command{
	Use:   "stake <owner> <amount>",
	Short: "Move tokens from a wallet into the staking pool",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runAmountTransition(args[0], args[1], "stake")
	},
}

var unstakeCmd = &cobra.Command{
	Use:   "unstake <owner> <amount>",
	Short: "Move staked tokens back to the owner's wallet",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runAmountTransition(args[0], args[1], "unstake")
	},
}

var harvestCmd = &cobra.Command{
	Use:   "harvest <owner>",
	Short: "Pay out the reward accrued since the last clock reset",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildApp()
		if err != nil {
			logx.Error("CLI", "harvest failed:", err)
			return
		}
		defer app.close()

		reward, err := app.engine.Harvest(args[0])
		if err != nil {
			logx.Error("CLI", "harvest failed:", err)
			return
		}
		if reward.IsZero() {
			fmt.Println("No reward accrued yet")
			return
		}
		fmt.Printf("Harvested %s to %s\n", reward.Dec(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
	rootCmd.AddCommand(stakeCmd)
	rootCmd.AddCommand(unstakeCmd)
	rootCmd.AddCommand(harvestCmd)
}

func runAmountTransition(owner, amountStr, verb string) {
	amount, err := uint256.FromDecimal(strings.ReplaceAll(amountStr, "_", ""))
	if err != nil {
		logx.Error("CLI", "could not parse amount string:", err)
		return
	}

	app, err := buildApp()
	if err != nil {
		logx.Error("CLI", verb+" failed:", err)
		return
	}
	defer app.close()

	var staked *uint256.Int
	switch verb {
	case "stake":
		record, err := app.engine.EnterStake(owner, amount)
		if err != nil {
			logx.Error("CLI", "stake failed:", err)
			return
		}
		staked = record.StakedAmount
	case "unstake":
		record, err := app.engine.BeginUnstake(owner, amount)
		if err != nil {
			logx.Error("CLI", "unstake failed:", err)
			return
		}
		staked = record.StakedAmount
	}
	fmt.Printf("%s: moved %s, staked balance now %s\n", verb, amount.Dec(), staked.Dec())
}
