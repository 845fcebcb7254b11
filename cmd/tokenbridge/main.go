package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/gnana997/tokenbridge/pkg/mcp"
	"github.com/gnana997/tokenbridge/pkg/mcplog"
	"github.com/gnana997/tokenbridge/pkg/resolver"
	"github.com/gnana997/tokenbridge/pkg/tokens"
	"github.com/gnana997/tokenbridge/pkg/util"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "serve":
		runServe(os.Args[2:])
	case "match":
		runMatch(os.Args[2:])
	case "inspect":
		runInspect(os.Args[2:])
	case "discover":
		runDiscover(os.Args[2:])
	case "version":
		fmt.Printf("tokenbridge %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// session holds the loaded inputs for one command invocation.
type session struct {
	Catalog     *tokens.Catalog
	Index       *tokens.CatalogIndex
	Vars        *tokens.VariableSet
	CatalogPath string
	LogPath     string
}

// loadSession loads the catalog and variable set using the flag > config >
// default fallback chain.
func loadSession(catalogFlag, variablesFlag, logFlag string) (*session, error) {
	cfg, err := loadProjectConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to read project config: %w", err)
	}
	if cfg == nil {
		cfg = &ProjectConfig{}
	}

	catalogPath := resolvePath(catalogFlag, cfg.CatalogPath, "tokens.json")
	variablesPath := resolvePath(variablesFlag, cfg.VariablesPath, "variables.json")

	cat, idx, err := tokens.LoadCatalogFromFile(catalogPath)
	if err != nil {
		return nil, err
	}
	vars, err := tokens.LoadVariablesFromFile(variablesPath)
	if err != nil {
		return nil, err
	}
	return &session{
		Catalog:     cat,
		Index:       idx,
		Vars:        vars,
		CatalogPath: catalogPath,
		LogPath:     resolvePath(logFlag, cfg.LogPath, ""),
	}, nil
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	catalogFlag := fs.String("catalog", "", "path to the token catalog JSON")
	variablesFlag := fs.String("variables", "", "path to the variable export JSON")
	logFlag := fs.String("log", "", "path to the MCP tool-call JSONL log")
	watch := fs.Bool("watch", false, "reload the catalog when it changes on disk")
	fs.Parse(args)

	logger := util.NewLogger(util.DefaultLoggerConfig())

	sess, err := loadSession(*catalogFlag, *variablesFlag, *logFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	callLog, err := mcplog.NewLogger(sess.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open tool-call log: %v\n", err)
		os.Exit(1)
	}

	srv, err := mcp.NewServer(sess.Catalog, sess.Index, sess.Vars, callLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
		os.Exit(1)
	}

	if *watch {
		watcher, err := tokens.NewCatalogWatcher(sess.CatalogPath, func(c *tokens.Catalog, i *tokens.CatalogIndex) {
			if err := srv.SetCatalog(c, i, sess.Vars); err != nil {
				logger.Warn("catalog swap failed", "error", err)
			}
		}, 0, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to watch catalog: %v\n", err)
			os.Exit(1)
		}
		if err := watcher.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to watch catalog: %v\n", err)
			os.Exit(1)
		}
		defer watcher.Stop()
	}

	if err := srv.ServeStdio(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func runMatch(args []string) {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	catalogFlag := fs.String("catalog", "", "path to the token catalog JSON")
	variablesFlag := fs.String("variables", "", "path to the variable export JSON")
	nodesFlag := fs.String("nodes", "", "path to a JSON file holding a node or node list")
	tolerance := fs.Float64("tolerance", 0, "numeric matching tolerance (default 2)")
	fs.Parse(args)

	if *nodesFlag == "" {
		fmt.Fprintln(os.Stderr, "match requires --nodes")
		os.Exit(1)
	}

	sess, err := loadSession(*catalogFlag, *variablesFlag, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*nodesFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read nodes file: %v\n", err)
		os.Exit(1)
	}

	var nodes []resolver.NodeValues
	if err := json.Unmarshal(data, &nodes); err != nil {
		// A single node object is also accepted.
		var node resolver.NodeValues
		if err := json.Unmarshal(data, &node); err != nil {
			fmt.Fprintf(os.Stderr, "invalid nodes JSON: %v\n", err)
			os.Exit(1)
		}
		nodes = []resolver.NodeValues{node}
	}

	var opts []resolver.Option
	if *tolerance > 0 {
		opts = append(opts, resolver.WithTolerance(*tolerance))
	}
	orch, err := resolver.NewOrchestrator(sess.Catalog, sess.Index, sess.Vars, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	reports := orch.MatchNodes(nodes, 0)
	out, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal reports: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func runInspect(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	catalogFlag := fs.String("catalog", "", "path to the token catalog JSON")
	variablesFlag := fs.String("variables", "", "path to the variable export JSON")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "inspect requires a token path argument")
		os.Exit(1)
	}
	path := fs.Arg(0)

	sess, err := loadSession(*catalogFlag, *variablesFlag, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	query := tokens.NewQuery(sess.Catalog, sess.Index, sess.Vars)
	out := map[string]any{
		"token_path": path,
		"variables":  query.VariablesForToken(path),
		"styles":     query.StylesForToken(path),
	}
	if value, ok := query.ResolveToken(path); ok {
		out["value"] = value
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func runDiscover(args []string) {
	fs := flag.NewFlagSet("discover", flag.ExitOnError)
	root := fs.String("root", ".", "directory to search for token exports")
	fs.Parse(args)

	files, err := tokens.DiscoverTokenFiles(*root, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "discover failed: %v\n", err)
		os.Exit(1)
	}
	for _, f := range files {
		fmt.Println(f)
	}
}

func printUsage() {
	fmt.Println("Usage: tokenbridge <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve      Start the MCP server over stdio")
	fmt.Println("  match      Match node values from a JSON file against the catalog")
	fmt.Println("  inspect    Inspect a token path's bindings and value")
	fmt.Println("  discover   List token/variable export files under a directory")
	fmt.Println("  version    Print version")
	fmt.Println("  help       Show this help message")
}
