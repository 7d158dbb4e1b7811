package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/epigrid/disease"
)

type scenarioInfo struct {
	ID             disease.Scenario `json:"id"`
	Name           string           `json:"name"`
	Contagion      float64          `json:"contagion"`
	SocialDistance float64          `json:"social_distance"`
	Transitions    [][]float64      `json:"transitions"`
}

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the built-in and configured scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			reg, err := cfg.Registry()
			if err != nil {
				return err
			}

			var infos []scenarioInfo
			for _, id := range reg.Scenarios() {
				m, err := reg.Lookup(id)
				if err != nil {
					return err
				}
				info := scenarioInfo{
					ID:             id,
					Name:           m.Name(),
					Contagion:      m.ContagionProbability(),
					SocialDistance: m.SocialDistanceEffect(),
				}
				for _, s := range disease.States() {
					info.Transitions = append(info.Transitions, m.Row(s))
				}
				infos = append(infos, info)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(infos)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCONTAGION\tSOCIAL DISTANCE")
			for _, info := range infos {
				fmt.Fprintf(w, "%d\t%s\t%g\t%g\n", info.ID, info.Name, info.Contagion, info.SocialDistance)
			}
			return w.Flush()
		},
	}
}
