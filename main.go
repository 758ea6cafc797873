package main

import (
	"flag"
	"fmt"
	"os"

	"LinkStore/config"
	memorystore "LinkStore/memoryStore"
	"LinkStore/monitor"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "yaml config file")
	envPath := flag.String("env", "", ".env file with LINKSTORE_* overrides")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: linkstore [-config file.yaml] [-env file] script.yaml")
		os.Exit(2)
	}
	if err := run(*configPath, *envPath, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "linkstore: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(configPath, envPath string) (*config.Config, error) {
	var envFiles []string
	if envPath != "" {
		envFiles = append(envFiles, envPath)
	}
	if err := config.LoadEnv(envFiles...); err != nil {
		return nil, fmt.Errorf("loading env: %w", err)
	}
	c := config.DefaultConfig()
	if configPath != "" {
		var err error
		if c, err = config.FromFile(configPath); err != nil {
			return nil, err
		}
	}
	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

func run(configPath, envPath, scriptPath string) error {
	c, err := loadConfig(configPath, envPath)
	if err != nil {
		return err
	}
	logger, err := c.BuildLogger()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()
	memorystore.SetLogger(logger)

	f, err := os.Open(scriptPath)
	if err != nil {
		return err
	}
	defer f.Close()
	script, err := ParseScript(f)
	if err != nil {
		return err
	}

	lists := memorystore.NewOrderedListStore(
		memorystore.WithMaxSize(c.Store.MaxListSize),
		memorystore.WithEvictionPolicy(c.Store.EvictionPolicy),
	)
	r := newRunner(lists, logger, os.Stdout)
	logger.Info("running script", zap.String("script", scriptPath), zap.Int("steps", len(script.Steps)))
	if err := r.Run(script); err != nil {
		return err
	}

	logger.Info("script finished", zap.Any("ops", r.stats.Snapshot()))
	if c.Monitoring.Enabled {
		stats, err := monitor.NewCollector(c.Monitoring.StatsInterval, c.Monitoring.CPUSampleTime).Collect()
		if err != nil {
			logger.Warn("collecting runtime stats", zap.Error(err))
			return nil
		}
		logger.Info("runtime stats", zap.Any("gcStats", *stats))
	}
	return nil
}
