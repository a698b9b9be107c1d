// Copyright 2026, slimlime

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/slimlime/fp-16-1/asm"
	"github.com/slimlime/fp-16-1/emulator"
	"github.com/slimlime/fp-16-1/machine"
)

var (
	flagMemory int
	flagInput  string
	flagTrace  bool
	flagDump   bool
	flagLimit  int
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fp16",
	Short: "FP-16/1 virtual machine for a small PDP-style assembly language.",
	Long: `FP-16/1 assembles a small PDP-style assembly language into a ` +
		`cell-addressed memory image and executes it. The run command ` +
		`assembles and executes a program; the dump command assembles it ` +
		`and prints the loaded environment.`,
}

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Assemble and execute a program, printing its output queue.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		env, prog, err := load(args[0])
		if err != nil {
			return
		}

		emu := emulator.NewEmulator(env)
		emu.Program = prog
		if flagTrace {
			emu.Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel).With().Timestamp().Logger()
		}

		err = emu.Run(flagLimit)
		if err != nil {
			return
		}

		for _, number := range env.Output {
			fmt.Fprintln(cmd.OutOrStdout(), number)
		}
		if flagDump {
			fmt.Fprint(cmd.OutOrStdout(), env.String())
		}

		return
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump FILE",
	Short: "Assemble and load a program, printing the environment.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		env, _, err := load(args[0])
		if err != nil {
			return
		}

		fmt.Fprint(cmd.OutOrStdout(), env.String())

		return
	},
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagMemory, "memory", "m", 0, "memory capacity in cells (default $FP16_MEMORY or 20)")
	rootCmd.PersistentFlags().StringVarP(&flagInput, "input", "i", "", "comma-separated input queue seed (default $FP16_INPUT or 5)")
	runCmd.Flags().BoolVarP(&flagTrace, "trace", "t", false, "trace each executed instruction")
	runCmd.Flags().BoolVarP(&flagDump, "dump", "d", false, "print the final environment after the run")
	runCmd.Flags().IntVarP(&flagLimit, "limit", "l", 0, "tick budget for the run")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(dumpCmd)
}

// config layers the command line over the process environment, which
// may itself come from a .env file.
func config() (cfg machine.Config, err error) {
	memory := flagMemory
	if memory == 0 {
		memory, _ = strconv.Atoi(os.Getenv("FP16_MEMORY"))
	}
	cfg.Capacity = memory

	input := flagInput
	if input == "" {
		input = os.Getenv("FP16_INPUT")
	}
	if input != "" {
		for _, word := range strings.Split(input, ",") {
			var number int64
			number, err = strconv.ParseInt(strings.TrimSpace(word), 0, 64)
			if err != nil {
				return
			}
			cfg.Input = append(cfg.Input, number)
		}
	}

	return
}

// load assembles a source file and loads it into a fresh environment.
func load(path string) (env *machine.Environment, prog *asm.Program, err error) {
	cfg, err := config()
	if err != nil {
		return
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	parser := &asm.Parser{}
	prog, err = parser.Parse(inf)
	if err != nil {
		return
	}

	env, err = machine.LoadProgram(prog, cfg)

	return
}

func main() {
	godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
