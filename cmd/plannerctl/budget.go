package main

import (
	"github.com/spf13/cobra"

	"wanderplan/internal/models/request_models"
	"wanderplan/internal/services"
)

func newBudgetCmd(root *rootOptions) *cobra.Command {
	var (
		req       request_models.EstimateBudgetRequest
		partySize int
	)

	c := &cobra.Command{
		Use:   "budget",
		Short: "Print a heuristic budget estimate for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.PartySize = &partySize

			log := root.logger()
			defer func() { _ = log.Sync() }()

			estimate, err := services.NewBudgetService(root.settings(log)).Estimate(req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), estimate)
		},
	}

	c.Flags().StringVar(&req.Destination, "destination", "", "destination city")
	c.Flags().StringVar(&req.StartDate, "start", "", "first day, YYYY-MM-DD")
	c.Flags().StringVar(&req.EndDate, "end", "", "last day, YYYY-MM-DD")
	c.Flags().IntVar(&partySize, "party-size", 1, "number of travellers")
	_ = c.MarkFlagRequired("destination")
	_ = c.MarkFlagRequired("start")
	_ = c.MarkFlagRequired("end")

	return c
}
