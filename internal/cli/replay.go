package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"go.dw1.io/lrucache"
	"go.dw1.io/lrucache/internal/lookup"
)

var (
	// ErrNoKeys is returned by replay when neither arguments nor input
	// provide a key.
	ErrNoKeys = errors.New("no keys to replay")
	// ErrInvalidCapacity is returned for a negative --capacity.
	ErrInvalidCapacity = errors.New("capacity must not be negative")
	errProducerFailed  = errors.New("producer failed")
)

// ReplayConfig holds the flags of the replay command.
type ReplayConfig struct {
	File    string
	Fail    []string
	Latency time.Duration
}

// Summary counts the outcomes of a replay.
type Summary struct {
	Hits   int
	Misses int
	Errors int
	Size   int
}

func newReplayCommand(config *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay [keys...]",
		Short: "Fetch each key through the cache and report hits and misses",
		Long: "Fetch each key through a read-through cache backed by a synthetic producer.\n" +
			"Keys come from the arguments, or one per line from --file or stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := args
			if len(keys) == 0 {
				var err error
				if keys, err = readKeys(cmd, config.Replay.File); err != nil {
					return err
				}
			}

			_, err := replay(cmd.Context(), cmd.OutOrStdout(), config, keys, newLogger(cmd.ErrOrStderr(), config))

			return err
		},
	}
	cmd.Flags().StringVarP(&config.Replay.File, "file", "f", "", "Read keys from file instead of stdin")
	cmd.Flags().StringSliceVarP(&config.Replay.Fail, "fail", "", nil, "Keys the producer fails for")
	cmd.Flags().DurationVarP(&config.Replay.Latency, "latency", "", 0, "Simulated producer latency")

	return cmd
}

func readKeys(cmd *cobra.Command, file string) ([]string, error) {
	var r io.Reader = cmd.InOrStdin()
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("cannot open key file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		r = f
	}

	var keys []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if k := strings.TrimSpace(sc.Text()); k != "" {
			keys = append(keys, k)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("cannot read keys: %w", err)
	}

	return keys, nil
}

// syntheticProducer stands in for an expensive lookup.
func syntheticProducer(config ReplayConfig) lookup.Producer[string] {
	fail := make(map[string]struct{}, len(config.Fail))
	for _, k := range config.Fail {
		fail[k] = struct{}{}
	}

	return func(ctx context.Context, key string) (string, error) {
		if config.Latency > 0 {
			t := time.NewTimer(config.Latency)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-t.C:
			}
		}
		if _, ok := fail[key]; ok {
			return "", errProducerFailed
		}

		return "record(" + key + ")", nil
	}
}

func replay(ctx context.Context, w io.Writer, config *Config, keys []string, log *slog.Logger) (Summary, error) {
	if config.Capacity < 0 {
		return Summary{}, fmt.Errorf("%w; got %d", ErrInvalidCapacity, config.Capacity)
	}
	if len(keys) == 0 {
		return Summary{}, ErrNoKeys
	}

	svc := lookup.New(
		lrucache.New[string, string](config.Capacity),
		syntheticProducer(config.Replay),
		lookup.WithLogger(log),
	)

	var sum Summary
	for _, key := range keys {
		v, outcome, err := svc.FetchOutcome(ctx, key)
		switch outcome {
		case lookup.Hit:
			sum.Hits++
		case lookup.Miss:
			sum.Misses++
		case lookup.Failed:
			sum.Errors++
		}
		if err != nil {
			fmt.Fprintf(w, "%s\t%s\t%v\n", key, outcome, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", key, outcome, v)
	}
	sum.Size = svc.Len()

	fmt.Fprintf(w, "hits=%d misses=%d errors=%d size=%d\n", sum.Hits, sum.Misses, sum.Errors, sum.Size)
	log.InfoContext(ctx, "replay finished",
		slog.Int("keys", len(keys)),
		slog.Int("hits", sum.Hits),
		slog.Int("misses", sum.Misses),
		slog.Int("errors", sum.Errors),
		slog.Int("size", sum.Size),
	)

	return sum, nil
}
