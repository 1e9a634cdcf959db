package main

import "github.com/Manu343726/isadb/cmd"

func main() {
	cmd.Execute()
}
