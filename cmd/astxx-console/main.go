// Command astxx-console is a manual smoke-test harness for the mgr
// package: it logs into a manager, then offers a tiny menu for poking
// at actions and watching events go by. It is not a product CLI.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/stolyarchuk/astxx/mgr"
)

var (
	host, user, password string
	port                 int
	debug                bool
)

func init() {
	flag.IntVar(&port, "port", mgr.DefaultPort, "manager port")
	flag.StringVar(&host, "host", "localhost", "manager host")
	flag.StringVar(&user, "user", "admin", "manager user")
	flag.StringVar(&password, "password", "admin", "manager secret")
	flag.Parse()
}

func main() {
	c, err := mgr.Connect(host, port)
	if err != nil {
		log.Fatal(err)
	}
	defer c.Disconnect()

	if _, err := mgr.Apply(mgr.NewLogin(user, password), c); err != nil {
		log.Fatal(err)
	}

	scanner := bufio.NewScanner(os.Stdin)

loop:
	for {
		printMenu()
		if !scanner.Scan() {
			break
		}
		switch scanner.Text() {
		case "q":
			break loop
		case "p":
			ping(c)
		case "d":
			debug = !debug
			toggleDebug(c)
		case "o":
			originate(c, scanner)
		case "l":
			list(c, scanner)
		default:
			printMenu()
		}
	}

	mgr.Apply(mgr.NewLogoff(), c)
}

func list(c *mgr.Connection, scanner *bufio.Scanner) {
	fmt.Println("Enter conference name:")
	if !scanner.Scan() {
		return
	}
	ml, err := mgr.GetConfbridgeList(c, scanner.Text())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(ml)
}

func originate(c *mgr.Connection, scanner *bufio.Scanner) {
	fmt.Println("Enter channel:")
	if !scanner.Scan() {
		return
	}
	o := mgr.NewOriginateApp(scanner.Text(), "Playback", "hello-world")
	resp, err := mgr.Apply(o, c)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(resp)
}

func toggleDebug(c *mgr.Connection) {
	if debug {
		fmt.Println("Enabling debug logging of every message")
		c.Logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	} else {
		fmt.Println("Disabling debug logging")
		c.Logger = nil
	}
}

func ping(c *mgr.Connection) {
	resp, err := mgr.Apply(mgr.NewPing(), c)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(resp)
}

func printMenu() {
	fmt.Println("Usage:")
	fmt.Println(" d -> toggle debug events")
	fmt.Println(" o -> originate to channel")
	fmt.Println(" l -> list conference participants")
	fmt.Println(" p -> to ping")
	fmt.Println(" q -> to quit")
}
