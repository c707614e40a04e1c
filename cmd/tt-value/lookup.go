package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var formLength int

var h2hCmd = &cobra.Command{
	Use:   "h2h <player-a-id> <player-b-id>",
	Short: "Show the head-to-head record and model estimate of two players",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		idA, err := parsePlayerID(args[0])
		if err != nil {
			return err
		}
		idB, err := parsePlayerID(args[1])
		if err != nil {
			return err
		}

		c, err := buildComponents(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer c.Close()

		view, err := c.lookup.HeadToHead(cmd.Context(), idA, idB)
		if err != nil {
			return err
		}
		return writeIndentedJSON(cmd.OutOrStdout(), view)
	},
}

var formCmd = &cobra.Command{
	Use:   "form <player-id>",
	Short: "Show a player's recent results and today's record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePlayerID(args[0])
		if err != nil {
			return err
		}

		c, err := buildComponents(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer c.Close()

		form, err := c.lookup.PlayerForm(cmd.Context(), id, formLength)
		if err != nil {
			return err
		}
		return writeIndentedJSON(cmd.OutOrStdout(), form)
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <listed name>",
	Short: "Resolve a bookmaker-listed name against the roster",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildComponents(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer c.Close()

		res, err := c.lookup.Resolve(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		return writeIndentedJSON(cmd.OutOrStdout(), res)
	},
}

func init() {
	formCmd.Flags().IntVarP(&formLength, "number", "n", 0, "Number of recent matches (defaults to engine.form_length)")
}

func parsePlayerID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid player id %q", raw)
	}
	return id, nil
}
