// Command bondopt solves, compares and backtests asset selections from the command line.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/guttosm/bond-optimizer/internal/logger"
	"github.com/joho/godotenv"
)

var logLevel = flag.String("log-level", "warn", "Log level written to stderr")

func main() {
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	register(commander)

	flag.Parse()
	logger.Init(*logLevel, true)

	os.Exit(int(commander.Execute(context.Background())))
}

func register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&solveCmd{}, "optimizer")
	c.Register(&compareCmd{}, "optimizer")

	c.Register(&datasetsCmd{}, "datasets")
	c.Register(&backtestCmd{}, "datasets")

	c.Register(&tokenCmd{}, "auth")
}
