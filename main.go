package main

import (
	"flag"
	"fsd/internal/di"
	"fsd/internal/structures"
	"log"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	debug := flag.Bool("debug", false, "debug logging with console output")
	flag.Parse()

	flags := &structures.CliFlags{
		ConfigPath: *configPath,
		DebugMode:  *debug,
	}

	if _, err := di.InitApp(flags); err != nil {
		log.Fatalf("fsd: %s", err)
	}
}
