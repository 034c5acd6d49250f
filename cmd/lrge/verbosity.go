package main

import "strconv"

// countFlag implements flag.Value for a flag that may be repeated
// (-v, -vv, -vvv), counting occurrences the way clap's ArgAction::Count
// does in the original CLI (lrge/src/cli.rs).
type countFlag int

func (c *countFlag) String() string {
	if c == nil {
		return "0"
	}
	return strconv.Itoa(int(*c))
}

func (c *countFlag) Set(string) error {
	*c++
	return nil
}

func (c *countFlag) IsBoolFlag() bool { return true } // allows -v rather than -v=true
