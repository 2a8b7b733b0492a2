// Command rr-dig is a small dig-style lookup tool over the rr-dig client
// library. Servers, timeout, and transports come from DNS_-prefixed
// environment variables; names and the record type come from the command
// line. Multiple names resolve concurrently.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/haukened/rr-dig/internal/dns/common/log"
	"github.com/haukened/rr-dig/internal/dns/common/utils"
	"github.com/haukened/rr-dig/internal/dns/config"
	"github.com/haukened/rr-dig/internal/dns/domain"
	"github.com/haukened/rr-dig/internal/dns/services/client"
)

const (
	version = "0.1.0-dev"
	appName = "rr-dig"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	flags := flag.NewFlagSet(appName, flag.ContinueOnError)
	typeName := flags.String("type", "A", "record type to query (A, AAAA, MX, TXT, ...)")
	className := flags.String("class", "IN", "record class to query")
	reverse := flags.Bool("x", false, "treat arguments as IP addresses and do PTR lookups")
	noRecurse := flags.Bool("norecurse", false, "clear the recursion-desired bit")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	names := flags.Args()
	if len(names) == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [-type T] [-class C] [-x] name...\n", appName)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}
	if err := log.Configure(cfg.Env, cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		return 1
	}

	rrtype := domain.RRTypeFromString(strings.ToUpper(*typeName))
	if rrtype == 0 {
		fmt.Fprintf(os.Stderr, "Unknown record type %q\n", *typeName)
		return 2
	}
	class := domain.ParseRRClass(strings.ToUpper(*className))
	if class == 0 {
		fmt.Fprintf(os.Stderr, "Unknown record class %q\n", *className)
		return 2
	}

	log.Info(map[string]any{
		"version": version,
		"servers": cfg.Query.Servers,
		"timeout": cfg.Query.TimeoutMS,
		"type":    rrtype.String(),
	}, "Starting lookup")

	c, err := client.New(client.Options{
		Servers:    cfg.Query.Servers,
		Timeout:    time.Duration(cfg.Query.TimeoutMS) * time.Millisecond,
		DisableUDP: !cfg.Query.UDP,
		DisableTCP: !cfg.Query.TCP,
		UDPSize:    cfg.Query.UDPSize,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := domain.DefaultQueryOptions()
	opts.RecursionDesired = !*noRecurse

	results := make([]domain.Message, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			target := name
			if *reverse {
				ip := net.ParseIP(name)
				if ip == nil {
					return fmt.Errorf("%q is not an IP address", name)
				}
				rev, err := domain.ReverseName(ip)
				if err != nil {
					return err
				}
				target = rev.String()
			}
			msg, err := c.ResolveContext(gctx, target, queryType(rrtype, *reverse), class, &opts)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			results[i] = msg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Lookup failed: %v\n", err)
		return 1
	}

	for i, msg := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printMessage(out, msg)
	}
	return 0
}

// queryType swaps in PTR for reverse lookups regardless of the -type flag.
func queryType(rrtype domain.RRType, reverse bool) domain.RRType {
	if reverse {
		return domain.RRTypePTR
	}
	return rrtype
}

// printMessage renders a response the way dig does: status line, question,
// then each populated section.
func printMessage(out io.Writer, msg domain.Message) {
	fmt.Fprintf(out, ";; status: %s, id: %d, flags:%s\n", msg.RCode, msg.ID, flagSummary(msg))
	for _, q := range msg.Questions {
		fmt.Fprintf(out, ";%s\n", q)
		if q.Name.LabelCount() > 1 {
			fmt.Fprintf(out, ";; apex: %s\n", utils.ApexDomain(q.Name))
		}
	}
	printSection(out, "ANSWER", msg.Answers)
	printSection(out, "AUTHORITY", msg.Authority)
	printSection(out, "ADDITIONAL", msg.Additional)
}

func printSection(out io.Writer, title string, records []domain.ResourceRecord) {
	if len(records) == 0 {
		return
	}
	fmt.Fprintf(out, ";; %s SECTION:\n", title)
	for _, rr := range records {
		fmt.Fprintln(out, rr)
	}
}

func flagSummary(msg domain.Message) string {
	var flags []string
	if msg.Response {
		flags = append(flags, "qr")
	}
	if msg.Authoritative {
		flags = append(flags, "aa")
	}
	if msg.Truncated {
		flags = append(flags, "tc")
	}
	if msg.RecursionDesired {
		flags = append(flags, "rd")
	}
	if msg.RecursionAvailable {
		flags = append(flags, "ra")
	}
	if msg.AuthenticData {
		flags = append(flags, "ad")
	}
	if msg.CheckingDisabled {
		flags = append(flags, "cd")
	}
	if len(flags) == 0 {
		return " none"
	}
	return " " + strings.Join(flags, " ")
}
