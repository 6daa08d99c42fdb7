package main

import "github.com/masmgr/commitharvest/cmd"

func main() {
	cmd.Run()
}
