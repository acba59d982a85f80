// Package cli 命令行仿真工具
package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/define"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/config"
)

type runOptions struct {
	configFile string
	topology   string
	ringSize   int
	seed       int64
	maxSlots   int
	workers    int
	verbose    bool
	tasks      []int
	minTasks   int
	maxTasks   int
	node       define.NodeConfig
	debug      bool
}

// NewRootCommand 创建 uavsim 命令
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "uavsim",
		Short:         "UAV multi-hop task offloading simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newRunCommand(), newTopologyCommand())
	return rootCmd
}

// Execute 运行命令行
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCommand() *cobra.Command {
	opts := &runOptions{}
	defaults := config.DefaultSimulation()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation and print the per-slot report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.configFile != "" {
				if err := opts.applyConfig(cmd); err != nil {
					return err
				}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			_, err := runSimulation(ctx, cmd.OutOrStdout(), opts)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "take simulation defaults from a config file (flags still win)")
	flags.StringVarP(&opts.topology, "topology", "t", config.TopologySample, "topology: 'sample' | 'ring'")
	flags.IntVar(&opts.ringSize, "ring-size", defaults.RingSize, "number of nodes in the ring topology")
	flags.Int64Var(&opts.seed, "seed", defaults.Seed, "random seed for initial task counts")
	flags.IntVar(&opts.maxSlots, "max-slots", defaults.MaxSlots, "slot budget")
	flags.IntVar(&opts.workers, "workers", 1, "parallelism of admission and decision phases")
	flags.BoolVarP(&opts.verbose, "verbose", "v", true, "print every slot and decision")
	flags.IntSliceVar(&opts.tasks, "tasks", nil, "fixed task count per node, overrides seeded sampling")
	flags.IntVar(&opts.minTasks, "min-tasks", defaults.MinTasks, "minimum seeded task count")
	flags.IntVar(&opts.maxTasks, "max-tasks", defaults.MaxTasks, "maximum seeded task count")
	flags.IntVar(&opts.node.TxCapacity, "tx-capacity", defaults.TxCapacity, "transmission queue capacity")
	flags.IntVar(&opts.node.CpCapacity, "cp-capacity", defaults.CpCapacity, "computation queue capacity")
	flags.IntVar(&opts.node.TxRate, "tx-rate", defaults.TxRate, "tasks transmitted per slot")
	flags.IntVar(&opts.node.CpRate, "cp-rate", defaults.CpRate, "tasks computed per slot")
	flags.BoolVar(&opts.debug, "debug", false, "enable engine debug logging")
	return cmd
}

// applyConfig 配置文件中的值只覆盖未在命令行显式设置的参数
func (o *runOptions) applyConfig(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(o.configFile)
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}
	sim := cfg.Simulation
	changed := cmd.Flags().Changed
	if !changed("topology") && sim.Topology != config.TopologyDatabase {
		o.topology = sim.Topology
	}
	if !changed("ring-size") {
		o.ringSize = sim.RingSize
	}
	if !changed("seed") {
		o.seed = sim.Seed
	}
	if !changed("max-slots") {
		o.maxSlots = sim.MaxSlots
	}
	if !changed("workers") && sim.Workers > 0 {
		o.workers = sim.Workers
	}
	if !changed("verbose") {
		o.verbose = sim.Verbose
	}
	if !changed("min-tasks") {
		o.minTasks = sim.MinTasks
	}
	if !changed("max-tasks") {
		o.maxTasks = sim.MaxTasks
	}
	if !changed("tx-capacity") {
		o.node.TxCapacity = sim.TxCapacity
	}
	if !changed("cp-capacity") {
		o.node.CpCapacity = sim.CpCapacity
	}
	if !changed("tx-rate") {
		o.node.TxRate = sim.TxRate
	}
	if !changed("cp-rate") {
		o.node.CpRate = sim.CpRate
	}
	return nil
}

func buildTopology(name string, ringSize int) (algorithm.Topology, error) {
	switch name {
	case config.TopologySample:
		return algorithm.SampleTopology(), nil
	case config.TopologyRing:
		if ringSize <= 0 {
			return nil, fmt.Errorf("%w: ring size must be positive, got %d", algorithm.ErrInvalidConfig, ringSize)
		}
		return algorithm.RingTopology(ringSize), nil
	default:
		return nil, fmt.Errorf("%w: unknown topology %q (use 'sample' or 'ring')", algorithm.ErrInvalidConfig, name)
	}
}

func runSimulation(ctx context.Context, out io.Writer, opts *runOptions) (*define.Result, error) {
	topo, err := buildTopology(opts.topology, opts.ringSize)
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if opts.debug {
		if logger, err = zap.NewDevelopment(); err != nil {
			return nil, fmt.Errorf("logger init: %w", err)
		}
		defer logger.Sync()
	}

	rc := algorithm.RunConfig{
		Source:   opts.topology,
		Topology: topo,
		Configs:  []define.NodeConfig{opts.node},
		Tasks:    opts.tasks,
		Seed:     opts.seed,
		MinTasks: opts.minTasks,
		MaxTasks: opts.maxTasks,
	}
	state, _, err := rc.Prepare()
	if err != nil {
		return nil, err
	}
	printInitial(out, state.Snapshot(), state.UAVs)

	engine, err := algorithm.NewEngine(state, algorithm.Options{
		MaxSlots: opts.maxSlots,
		Workers:  opts.workers,
		Verbose:  opts.verbose,
		Observer: &reporter{out: out, decisions: opts.verbose},
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	result, err := engine.Run(ctx)
	if result != nil {
		printSummary(out, result)
	}
	return result, err
}

func newTopologyCommand() *cobra.Command {
	var name string
	var ringSize int

	cmd := &cobra.Command{
		Use:   "topology",
		Short: "Print the adjacency table and hop counts of a built-in topology",
		RunE: func(cmd *cobra.Command, args []string) error {
			topo, err := buildTopology(name, ringSize)
			if err != nil {
				return err
			}
			printTopology(cmd.OutOrStdout(), topo)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "topology", "t", config.TopologySample, "topology: 'sample' | 'ring'")
	cmd.Flags().IntVar(&ringSize, "ring-size", config.DefaultSimulation().RingSize, "number of nodes in the ring topology")
	return cmd
}

func printTopology(out io.Writer, topo algorithm.Topology) {
	ids := topo.IDs()

	fmt.Fprintln(out, "邻接表:")
	for _, id := range ids {
		fmt.Fprintf(out, "  UAV_%d: %v\n", id, topo.Neighbors(id))
	}

	routes := topo.Routes()
	fmt.Fprintln(out, "跳数:")
	for _, i := range ids {
		fmt.Fprintf(out, "  UAV_%d:", i)
		for _, j := range ids {
			if d := routes.Dist[i][j]; math.IsInf(d, 1) {
				fmt.Fprint(out, " -")
			} else {
				fmt.Fprintf(out, " %d", int(d))
			}
		}
		fmt.Fprintln(out)
	}
	if diameter, connected := routes.Diameter(); connected {
		fmt.Fprintf(out, "直径: %d\n", diameter)
	} else {
		fmt.Fprintf(out, "直径: %d（网络不连通）\n", diameter)
	}
}
