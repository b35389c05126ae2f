package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Chahine-tech/gosql-engine/internal/config"
	"github.com/Chahine-tech/gosql-engine/pkg/engine"
	"github.com/Chahine-tech/gosql-engine/pkg/gosql"
)

const banner = `
  ██████╗  ██████╗ ███████╗ ██████╗ ██╗
 ██╔════╝ ██╔═══██╗██╔════╝██╔═══██╗██║
 ██║  ███╗██║   ██║███████╗██║   ██║██║
 ██║   ██║██║   ██║╚════██║██║▄▄ ██║██║
 ╚██████╔╝╚██████╔╝███████║╚██████╔╝███████╗
  ╚═════╝  ╚═════╝ ╚══════╝ ╚══▀▀═╝ ╚══════╝

 gosql — an embeddable in-memory SQL engine
`

func main() {
	var (
		queryFile  = flag.String("file", "", "File containing a SQL script")
		queryText  = flag.String("sql", "", "SQL script string")
		configFile = flag.String("config", "", "Configuration file path")
		format     = flag.String("format", "", "Output format override (table, csv)")
		verbose    = flag.Bool("verbose", false, "Verbose mode")
		showHelp   = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *showHelp {
		fmt.Print(banner)
		showUsage()
		return
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Printf("Warning: could not load config: %v\n", err)
		cfg = config.DefaultConfig()
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if lvl, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logrus.SetLevel(lvl)
	}

	var sql string
	switch {
	case *queryFile != "":
		content, err := os.ReadFile(*queryFile)
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", *queryFile, err)
			os.Exit(1)
		}
		sql = string(content)
	case *queryText != "":
		sql = *queryText
	default:
		showUsage()
		os.Exit(1)
	}

	if *verbose {
		fmt.Print(banner)
		fmt.Printf("Running script (%d bytes)...\n\n", len(sql))
	}

	db := gosql.NewDatabase()
	if err := run(db, sql, cfg.Output.Format); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(db *engine.Database, sql string, format string) error {
	var rows []engine.Row
	var header engine.Header

	_, err := gosql.Exec(db, sql, func(r engine.Row, h engine.Header) {
		rows = append(rows, r)
		header = h
	})
	if err != nil {
		return err
	}
	if header == nil {
		return nil
	}

	switch format {
	case "csv":
		printCSV(header, rows)
	default:
		printTable(header, rows)
	}
	return nil
}

func printTable(header engine.Header, rows []engine.Row) {
	names := make([]string, len(header))
	for i, col := range header {
		names[i] = col.Name
	}
	fmt.Println(strings.Join(names, "\t"))
	fmt.Println(strings.Repeat("-", 8*len(names)))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = v.String()
		}
		fmt.Println(strings.Join(cells, "\t"))
	}
}

func printCSV(header engine.Header, rows []engine.Row) {
	names := make([]string, len(header))
	for i, col := range header {
		names[i] = col.Name
	}
	fmt.Println(strings.Join(names, ","))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = v.String()
		}
		fmt.Println(strings.Join(cells, ","))
	}
}

func showUsage() {
	fmt.Println("gosql - embeddable in-memory SQL engine")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  gosql -sql \"CREATE TABLE...; SELECT...\"   Run a SQL script from a string")
	fmt.Println("  gosql -file script.sql                    Run a SQL script from a file")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -format FORMAT   Output format: table, csv (default: table)")
	fmt.Println("  -config FILE     Configuration file path")
	fmt.Println("  -verbose         Enable verbose output")
	fmt.Println("  -help            Show this help")
}
