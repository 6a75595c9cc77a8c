package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"brane_auction/chain"
	"brane_auction/sdk"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	cli "gopkg.in/urfave/cli.v1"
)

func main() {
	app := cli.NewApp()
	app.Name = "braned"
	app.Usage = "single node host for the brane auction contract"
	app.Flags = []cli.Flag{dataDirFlag, logLevelFlag}
	app.Commands = []cli.Command{
		{
			Name:   "init",
			Usage:  "write genesis and instantiate the contract",
			Flags:  []cli.Flag{genesisFlag},
			Action: initAction,
		},
		{
			Name:      "exec",
			Usage:     "execute a contract action",
			ArgsUsage: "<action>",
			Flags:     []cli.Flag{senderFlag, payloadFlag, fundsFlag, timeFlag},
			Action:    execAction,
		},
		{
			Name:      "query",
			Usage:     "run a read-only query",
			ArgsUsage: "<name> [payload]",
			Action:    queryAction,
		},
		{
			Name:      "balance",
			Usage:     "print a ledger balance",
			ArgsUsage: "<address> <asset>",
			Action:    balanceAction,
		},
		{
			Name:      "deposit",
			Usage:     "credit an account",
			ArgsUsage: "<address> <amount><asset>",
			Action:    depositAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(ctx *cli.Context) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(ctx.GlobalString(logLevelFlag.Name))
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func openChain(ctx *cli.Context) (*chain.Chain, func(), error) {
	log, err := newLogger(ctx)
	if err != nil {
		return nil, nil, err
	}
	c, err := chain.Open(ctx.GlobalString(dataDirFlag.Name), chain.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	return c, func() {
		c.Close()
		log.Sync()
	}, nil
}

func initAction(ctx *cli.Context) error {
	g, err := chain.LoadGenesis(ctx.String(genesisFlag.Name))
	if err != nil {
		return err
	}
	c, done, err := openChain(ctx)
	if err != nil {
		return err
	}
	defer done()
	rcpt, err := c.Init(g)
	if rcpt != nil {
		printReceipt(rcpt)
	}
	return err
}

func execAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("usage: braned exec <action>")
	}
	funds, err := parseCoins(ctx.String(fundsFlag.Name))
	if err != nil {
		return err
	}
	c, done, err := openChain(ctx)
	if err != nil {
		return err
	}
	defer done()
	rcpt, err := c.Execute(chain.Call{
		Sender:  sdk.Address(ctx.String(senderFlag.Name)),
		Action:  ctx.Args().First(),
		Payload: ctx.String(payloadFlag.Name),
		Funds:   funds,
		Time:    ctx.Int64(timeFlag.Name),
	})
	printReceipt(rcpt)
	return err
}

func queryAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errors.New("usage: braned query <name> [payload]")
	}
	c, done, err := openChain(ctx)
	if err != nil {
		return err
	}
	defer done()
	out, err := c.Query(ctx.Args().Get(0), ctx.Args().Get(1))
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func balanceAction(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return errors.New("usage: braned balance <address> <asset>")
	}
	c, done, err := openChain(ctx)
	if err != nil {
		return err
	}
	defer done()
	bal, err := c.Balance(sdk.Address(ctx.Args().Get(0)), sdk.Asset(ctx.Args().Get(1)))
	if err != nil {
		return err
	}
	fmt.Println(bal)
	return nil
}

func depositAction(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return errors.New("usage: braned deposit <address> <amount><asset>")
	}
	coin, err := parseCoin(ctx.Args().Get(1))
	if err != nil {
		return err
	}
	c, done, err := openChain(ctx)
	if err != nil {
		return err
	}
	defer done()
	return c.Deposit(sdk.Address(ctx.Args().Get(0)), coin.Asset, coin.Amount)
}

// parseCoin reads the event line form of a coin, e.g. 1000hbd.
func parseCoin(s string) (sdk.Coin, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if i <= 0 || i == len(s) {
		return sdk.Coin{}, errors.Errorf("invalid coin %q", s)
	}
	amount, err := strconv.ParseInt(s[:i], 10, 64)
	if err != nil {
		return sdk.Coin{}, errors.Wrapf(err, "invalid coin %q", s)
	}
	return sdk.Coin{Asset: sdk.Asset(s[i:]), Amount: amount}, nil
}

func parseCoins(s string) ([]sdk.Coin, error) {
	var out []sdk.Coin
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		coin, err := parseCoin(part)
		if err != nil {
			return nil, err
		}
		out = append(out, coin)
	}
	return out, nil
}

func printReceipt(r *chain.Receipt) {
	fmt.Printf("tx:      %s\n", r.TxID)
	if !r.Success {
		fmt.Printf("failed:  %s (%s)\n", r.Error, r.Kind)
		return
	}
	fmt.Printf("time:    %d\n", r.Time)
	for _, a := range r.Attributes {
		fmt.Printf("attr:    %s=%s\n", a.Key, a.Value)
	}
	for _, m := range r.Messages {
		switch msg := m.(type) {
		case sdk.TransferMsg:
			fmt.Printf("msg:     transfer %d%s -> %s\n", msg.Amount, msg.Asset, msg.To)
		case sdk.MintMsg:
			fmt.Printf("msg:     mint %s -> %s\n", msg.TokenURI, msg.Owner)
		}
	}
	for _, l := range r.Logs {
		fmt.Printf("event:   %s\n", l)
	}
}
