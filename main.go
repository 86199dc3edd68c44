package main

import "github.com/Adedunmol/questino/cmd"

func main() {
	cmd.Execute()
}
