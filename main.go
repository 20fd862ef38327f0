package main

import "kantarabench/cmd"

func main() {
	cmd.Execute()
}
