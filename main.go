/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/PranamRaj/football-connect/cmd"

func main() {
	cmd.Execute()
}
