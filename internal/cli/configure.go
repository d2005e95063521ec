// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/scc-digitalhub/zenodo-cli/sdk/config"
	"github.com/scc-digitalhub/zenodo-cli/sdk/utils"
)

func newConfigureCommand() *cobra.Command {
	var (
		values utils.SettingsValues
		global bool
	)
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Store default author, affiliation and access token",
		Long: `Write the settings file (.zenodo.ini) used by the other commands.
Author and affiliation are shared by both environments; the token is stored
for production, or for the sandbox with --sandbox.

Without any value flag, and on a terminal, the values are asked interactively.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			sandbox, _ := flags.GetBool("sandbox")
			values.Token, _ = flags.GetString("token")
			values.BaseURL, _ = flags.GetString("base-url")
			env := config.ResolveEnvironment(sandbox)

			target, err := utils.TargetSettingsPath(global)
			if err != nil {
				return err
			}

			if values == (utils.SettingsValues{}) {
				if !isTerminal(cmd.InOrStdin()) {
					return errors.New("nothing to configure: pass --author, --affiliation or --token")
				}
				current, err := utils.ReadSettingsFile(target, env)
				if err != nil {
					return err
				}
				if values, err = promptSettings(env, current); err != nil {
					return err
				}
			}

			if err := utils.WriteSettings(target, env, values); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Settings saved to %s [%s]", target, env)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&values.Author, "author", "", "Default author name")
	fl.StringVar(&values.Affiliation, "affiliation", "", "Default affiliation")
	fl.BoolVar(&global, "global", false, "Write to the home directory instead of the current directory")
	return cmd
}

// promptSettings asks for every value; an empty answer keeps the current one.
func promptSettings(env config.Environment, current utils.SettingsValues) (utils.SettingsValues, error) {
	var out utils.SettingsValues
	var err error
	if out.Author, err = ask("Author (e.g. Doe, John)", current.Author, false); err != nil {
		return out, err
	}
	if out.Affiliation, err = ask("Affiliation", current.Affiliation, false); err != nil {
		return out, err
	}
	if out.Token, err = ask("Access token for "+env.String(), "", true); err != nil {
		return out, err
	}
	return out, nil
}

func ask(label, def string, secret bool) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: def != "",
		Stdin:     os.Stdin,
	}
	if secret {
		p.Mask = '*'
	}
	v, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return "", errors.New("configuration aborted")
		}
		return "", err
	}
	return strings.TrimSpace(v), nil
}
