package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/tokenchain/consensus"
	"github.com/luca-patrignani/tokenchain/ledger"
	"github.com/luca-patrignani/tokenchain/wallet"
)

// defaultDifficulty keeps the walkthrough fast: three trailing zeros take a
// few thousand hash attempts on average.
const defaultDifficulty = 3

// maxDifficulty caps the accepted difficulty. Every extra digit multiplies
// the expected mining time by sixteen, anything above this keeps the demo
// spinning for far too long.
const maxDifficulty = 6

func main() {
	workersFlag := flag.Int("workers", 1, "goroutines searching for a nonce")
	flag.Parse()

	difficulty, err := parseDifficulty(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\nusage: %s [-workers n] [difficulty]\n", err, os.Args[0])
		os.Exit(1)
	}

	// Create a new slog handler with the default PTerm logger
	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)

	// Create a new slog logger with the handler
	logger := slog.New(handler)
	pterm.Print("\n")

	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("T", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("oken", pterm.FgDarkGray.ToStyle()),
		putils.LettersFromStringWithStyle("C", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("hain", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err != nil {
		logger.Error(err.Error())
	}
	pterm.Print(title)

	miner, err := wallet.New()
	if err != nil {
		panic(err)
	}
	receiver, err := wallet.New()
	if err != nil {
		panic(err)
	}
	pterm.Info.Printfln("Miner address: %s", miner.Address().Short())
	pterm.Info.Printfln("Receiver address: %s", receiver.Address().Short())
	pterm.Println()

	spinner, _ := pterm.DefaultSpinner.Start("Mining the genesis block ...")
	node, err := ledger.New(miner.Address(),
		ledger.WithRule(consensus.TrailingZeros(difficulty)),
		ledger.WithWorkers(*workersFlag),
		ledger.WithLogger(logger),
	)
	if err != nil {
		spinner.Fail()
		panic(err)
	}
	spinner.Success()

	// The miner spends part of its genesis reward in two transfers, each
	// mined into its own block.
	if err := transferAndMine(node, miner, receiver.Address(), 0.5); err != nil {
		panic(err)
	}
	if err := transferAndMine(node, miner, receiver.Address(), 1.0); err != nil {
		panic(err)
	}

	printChain(node)
	err = printBalances(node, []account{
		{name: "miner", addr: miner.Address()},
		{name: "receiver", addr: receiver.Address()},
	})
	if err != nil {
		logger.Error(err.Error())
	}

	spinner, _ = pterm.DefaultSpinner.Start("Validating the whole chain ...")
	if err := node.Verify(); err != nil {
		spinner.Fail()
		panic(err)
	}
	spinner.Success()
	pterm.Success.Printfln("Successfully validated chain of size %d", node.Size())
}

// transferAndMine signs a transfer with the sender's private key, submits it
// to the node and mines the block that carries it.
func transferAndMine(node *ledger.Blockchain, from *wallet.Wallet, to wallet.Address, value float64) error {
	tx := ledger.Transaction{
		Sender:    from.Address(),
		Recipient: to,
		Value:     value,
	}
	if err := tx.Sign(from.Private); err != nil {
		return err
	}
	if err := node.Submit(tx); err != nil {
		return err
	}

	text := pterm.Sprintf("Mining a block for the %g token transfer ...", value)
	spinner, _ := pterm.DefaultSpinner.Start(text)
	block, err := node.Mine(context.Background())
	if err != nil {
		spinner.Fail()
		return err
	}
	spinner.Success()
	pterm.Success.Printfln("Found POW for block %d with nonce %d", block.Index, block.Nonce)
	return nil
}

// parseDifficulty reads the optional difficulty argument, the number of
// trailing zero hex digits a block hash must end with.
func parseDifficulty(args []string) (int, error) {
	if len(args) == 0 {
		return defaultDifficulty, nil
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("expected at most one difficulty argument, got %d", len(args))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("difficulty must be a number: %v", err)
	}
	if n < 1 || n > maxDifficulty {
		return 0, fmt.Errorf("difficulty must be between 1 and %d, got %d", maxDifficulty, n)
	}
	return n, nil
}
