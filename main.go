package main

import "github.com/Yates-Labs/promptsmith/cmd"

func main() {
	cmd.Execute()
}
