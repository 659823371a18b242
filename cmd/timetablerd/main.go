// Command timetablerd runs the course scheduling service, either as an
// HTTP server or as a one-shot CLI solve over a JSON file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/acme-u/timetabler/internal/config"
	"github.com/acme-u/timetabler/internal/httpapi"
	"github.com/acme-u/timetabler/internal/logging"
	"github.com/acme-u/timetabler/internal/scheduler"
)

var inputFile string

func main() {
	root := &cobra.Command{
		Use:   "timetablerd",
		Short: "Course scheduling engine",
		Long:  "Transforms a timetabling problem into an integer linear program and solves it.",
	}

	cmdServe := &cobra.Command{
		Use:   "serve",
		Short: "run the HTTP solve API",
		Run:   commandServe,
	}
	root.AddCommand(cmdServe)

	cmdSolve := &cobra.Command{
		Use:   "solve",
		Short: "solve a problem instance read from a JSON file and print the schedule",
		Run:   commandSolve,
	}
	cmdSolve.Flags().StringVarP(&inputFile, "input", "i", "", "path to a JSON problem instance (required)")
	cmdSolve.MarkFlagRequired("input")
	root.AddCommand(cmdSolve)

	if err := root.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func commandServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer logger.Sync()

	router := httpapi.NewRouter(cfg, logger)
	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Sugar().Infof("listening on %s", addr)
	if err := router.Run(addr); err != nil {
		logger.Sugar().Fatalf("server exited: %v", err)
	}
}

func commandSolve(cmd *cobra.Command, args []string) {
	raw, err := os.ReadFile(inputFile)
	if err != nil {
		log.Fatalf("reading %s: %v", inputFile, err)
	}

	var instance scheduler.ProblemInstance
	if err := json.Unmarshal(raw, &instance); err != nil {
		log.Fatalf("parsing %s: %v", inputFile, err)
	}

	schedule, schedErr := scheduler.Solve(context.Background(), instance, scheduler.Options{})
	if schedErr != nil {
		log.Fatalf("%s/%s: %s", schedErr.Stage, schedErr.Kind, schedErr.Detail)
	}

	if verr := scheduler.Validate(schedule, instance); verr != nil {
		log.Fatalf("solved schedule failed its own post-condition check: %v", verr)
	}

	out, err := json.MarshalIndent(schedule, "", "  ")
	if err != nil {
		log.Fatalf("encoding schedule: %v", err)
	}
	fmt.Println(string(out))
}
