package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/lox/okeysim/internal/display"
	"github.com/lox/okeysim/okey"
)

// EvalCmd evaluates a hand supplied on the command line.
type EvalCmd struct {
	Tiles     []string `arg:"" required:"" help:"Hand tiles, e.g. Y1 Y2 Y3 B7 (14 or 15 of them)"`
	Okey      string   `help:"The okey tile, e.g. Y6"`
	Indicator string   `help:"The indicator tile; the okey is derived from it"`
	FakeFace  string   `help:"Pin the fake okey to a tile face (default: plays the okey)"`
}

func (c *EvalCmd) Run() error {
	if (c.Okey == "") == (c.Indicator == "") {
		return fmt.Errorf("exactly one of --okey or --indicator is required")
	}

	hand, err := okey.ParseTiles(strings.Join(c.Tiles, " "))
	if err != nil {
		return err
	}

	okeyTile, err := c.okeyTile()
	if err != nil {
		return err
	}

	ev, err := c.evaluator(okeyTile)
	if err != nil {
		return err
	}

	result, err := ev.Evaluate(hand)
	if err != nil {
		return err
	}

	display.Evaluation(os.Stdout, okeyTile, result)
	return nil
}

func (c *EvalCmd) okeyTile() (okey.Tile, error) {
	if c.Okey != "" {
		return okey.ParseTile(c.Okey)
	}
	indicator, err := okey.ParseTile(c.Indicator)
	if err != nil {
		return 0, err
	}
	return okey.OkeyFor(indicator)
}

func (c *EvalCmd) evaluator(okeyTile okey.Tile) (*okey.Evaluator, error) {
	if c.FakeFace == "" {
		return okey.NewEvaluator(okeyTile)
	}
	face, err := okey.ParseTile(c.FakeFace)
	if err != nil {
		return nil, err
	}
	return okey.NewEvaluatorFakeFace(okeyTile, face)
}
