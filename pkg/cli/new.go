package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/httpstub/pkg/config"
)

var newOutput string

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a stub fixture interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var method, rawurl, body string
		statusStr := "200"

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("What HTTP method should the stub match?").
					Options(
						huh.NewOption("GET", "GET"),
						huh.NewOption("POST", "POST"),
						huh.NewOption("PUT", "PUT"),
						huh.NewOption("PATCH", "PATCH"),
						huh.NewOption("DELETE", "DELETE"),
					).
					Value(&method),
				huh.NewInput().
					Title("What is the URL to match?").
					Placeholder("http://api.test/v1/users").
					Value(&rawurl).
					Validate(func(s string) error {
						if s == "" {
							return errors.New("url is required")
						}
						return nil
					}),
				huh.NewInput().
					Title("What status code should it return?").
					Value(&statusStr).
					Validate(func(s string) error {
						n, err := strconv.Atoi(s)
						if err != nil || n < 100 {
							return errors.New("enter a status code >= 100")
						}
						return nil
					}),
				huh.NewText().
					Title("Response body (optional)").
					Placeholder(`{"status":"ok"}`).
					Value(&body),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}

		status, _ := strconv.Atoi(statusStr)
		file := config.File{
			Version: "1",
			Stubs: []*config.StubConfig{{
				Method: method,
				URL:    rawurl,
				Response: &config.ResponseConfig{
					Status: status,
					Body:   body,
				},
			}},
		}

		data, err := yaml.Marshal(&file)
		if err != nil {
			return err
		}
		if err := os.WriteFile(newOutput, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", newOutput, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", newOutput)
		return nil
	},
}

func init() {
	newCmd.Flags().StringVarP(&newOutput, "output", "o", "stubs.yaml", "Fixture file to write")
	rootCmd.AddCommand(newCmd)
}
