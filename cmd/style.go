package main

import (
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/tokenchain/ledger"
	"github.com/luca-patrignani/tokenchain/wallet"
)

// account pairs an address with the label it is shown under in the demo.
type account struct {
	name string
	addr wallet.Address
}

// getBlockPanel creates a panel displaying one mined block: its linkage and
// Proof-of-Work metadata followed by every transaction it carries.
func getBlockPanel(block ledger.Block) pterm.Panel {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	info := pterm.Sprintfln("hash  %s", shortHash(block.Hash))
	info += pterm.Sprintfln("prev  %s", shortHash(block.PrevHash))
	info += pterm.Sprintfln("nonce %d", block.Nonce)
	info += pterm.Sprintfln("mined %s", time.Unix(block.Timestamp, 0).Format(time.TimeOnly))
	for _, tx := range block.Transactions {
		info += printTransactionInfo(tx)
	}
	title := pterm.LightGreen(pterm.Sprintf("|BLOCK %d|", block.Index))
	return pterm.Panel{Data: pbox.WithTitle(title).WithTitleTopCenter().Sprintf(info)}
}

// printTransactionInfo renders a single transaction line. Rewards are
// highlighted, they are the only transfers without a real sender behind them.
func printTransactionInfo(tx ledger.Transaction) string {
	if tx.IsReward() {
		return pterm.Sprintfln("%s -> %s: %g", pterm.LightYellow("reward"), tx.Recipient.Short(), tx.Value)
	}
	return pterm.Sprintfln("%s -> %s: %g", tx.Sender.Short(), tx.Recipient.Short(), tx.Value)
}

// printChain renders every block on the chain side by side, oldest first.
func printChain(node *ledger.Blockchain) {
	var panels []pterm.Panel
	for i := 0; i < node.Size(); i++ {
		block, err := node.GetByIndex(i)
		if err != nil {
			continue
		}
		panels = append(panels, getBlockPanel(*block))
	}
	pterm.DefaultPanel.WithPanels([][]pterm.Panel{panels}).Render()
}

// printBalances renders the derived balance of each account as a table. The
// numbers are replayed from the chain at render time, nothing is cached.
func printBalances(node *ledger.Blockchain, accounts []account) error {
	data := pterm.TableData{{"Account", "Address", "Balance"}}
	for _, a := range accounts {
		balance := strconv.FormatFloat(node.Balance(a.addr), 'g', -1, 64)
		data = append(data, []string{a.name, a.addr.Short(), balance})
	}
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
}

// shortHash compresses a hex hash for terminal output, keeping the tail
// visible so the Proof-of-Work suffix can be eyeballed. Sentinel values stay
// whole.
func shortHash(hash string) string {
	if len(hash) <= 16 {
		return hash
	}
	return hash[:8] + ".." + hash[len(hash)-6:]
}
