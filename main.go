// Copyright © 2021 The electrical authors

package main

import "github.com/WesP10/electrical/cmd"

func main() {
	cmd.Execute()
}
