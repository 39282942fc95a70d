package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"wanderplan/internal/models/request_models"
	"wanderplan/internal/models/response_models"
	"wanderplan/internal/services"
	"wanderplan/pkg/llm"
	mem "wanderplan/pkg/memcache"
	"wanderplan/pkg/metrics"
)

type suggestOutput struct {
	Itinerary *response_models.GeneratedItinerary `json:"itinerary,omitempty"`
	Metrics   response_models.PlannerMetrics      `json:"metrics"`
}

func newSuggestCmd(root *rootOptions) *cobra.Command {
	var (
		req       request_models.GenerationRequest
		partySize int
		budget    float64
		provider  string
	)

	c := &cobra.Command{
		Use:   "suggest",
		Short: "Run one orchestrated generation and print the itinerary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if provider != "" && !llm.IsKnownProvider(provider) {
				return fmt.Errorf("unknown --provider %q", provider)
			}
			if cmd.Flags().Changed("party-size") {
				req.PartySize = &partySize
			}
			if cmd.Flags().Changed("budget") {
				req.Budget = &budget
			}

			log := root.logger()
			defer func() { _ = log.Sync() }()

			current := root.settings(log).Current()
			if provider != "" {
				current.Provider.Provider = provider
			}

			rec := metrics.NewRecorder(nil)
			planner := services.NewPlannerService(services.StaticSettings(current), rec, mem.NewMemoryDrafts(time.Hour), log)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			it, err := planner.SuggestItinerary(ctx, req)
			out := suggestOutput{Itinerary: it, Metrics: rec.PlannerSnapshot()}
			if err != nil {
				_ = printJSON(cmd.ErrOrStderr(), out)
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	c.Flags().StringVar(&req.Destination, "destination", "", "destination city")
	c.Flags().StringVar(&req.StartDate, "start", "", "first day, YYYY-MM-DD")
	c.Flags().StringVar(&req.EndDate, "end", "", "last day, YYYY-MM-DD")
	c.Flags().StringVar(&req.Origin, "origin", "", "departure city")
	c.Flags().IntVar(&partySize, "party-size", 1, "number of travellers")
	c.Flags().Float64Var(&budget, "budget", 0, "total budget hint")
	c.Flags().StringVar(&provider, "provider", "", "override LLM_PROVIDER for this run")
	_ = c.MarkFlagRequired("destination")
	_ = c.MarkFlagRequired("start")
	_ = c.MarkFlagRequired("end")

	return c
}
