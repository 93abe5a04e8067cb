package main

import (
	"bytes"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
)

func TestPrintRules(t *testing.T) {
	editor := loadedEditor(t, true)

	var out bytes.Buffer
	printRules(&out, editor)

	text := out.String()
	assert.Contains(t, text, base58.Encode(editor.WalletAddress()))
	assert.Contains(t, text, "program version 3")
	assert.Contains(t, text, "Base voting time")
	assert.Contains(t, text, "3 days")
	assert.Contains(t, text, "Community")
	assert.Contains(t, text, "Council")
	assert.Contains(t, text, "10%")
	assert.Contains(t, text, "Strict")
	assert.Contains(t, text, "Early")
}

func TestPrintRules_NoCouncil(t *testing.T) {
	editor := loadedEditor(t, false)

	var out bytes.Buffer
	printRules(&out, editor)
	assert.NotContains(t, out.String(), "Council")
}

func TestPrintSummary(t *testing.T) {
	editor := loadedEditor(t, true)

	var out bytes.Buffer
	printSummary(&out, editor)
	assert.Equal(t, "No changes.\n", out.String())

	editor.SetCoolOffHours(12)
	out.Reset()
	printSummary(&out, editor)

	text := out.String()
	assert.Contains(t, text, "Cool-off time")
	assert.Contains(t, text, "0 hours")
	assert.Contains(t, text, "12 hours")
	assert.Contains(t, text, "2.5 days")
}

func TestFormatPower(t *testing.T) {
	editor := loadedEditor(t, true)
	assert.Equal(t, "5", formatPower(editor.Current().CommunityRules.VotingPowerToCreateProposals))
	assert.Equal(t, "1", formatPower(editor.Current().CouncilRules.VotingPowerToCreateProposals))
}
