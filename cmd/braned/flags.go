package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "datadir",
		Value: "brane-data",
		Usage: "directory of the chain database",
	}
	timeFlag = cli.Int64Flag{
		Name:  "time",
		Usage: "block time in unix seconds for the call (0 keeps the chain time)",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Value: "warn",
		Usage: "log level (debug|info|warn|error)",
	}
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Value: "genesis.yaml",
		Usage: "genesis file used by init",
	}
	senderFlag = cli.StringFlag{
		Name:  "sender",
		Usage: "address signing the call, e.g. hive:alice",
	}
	payloadFlag = cli.StringFlag{
		Name:  "payload",
		Usage: "pipe delimited call payload",
	}
	fundsFlag = cli.StringFlag{
		Name:  "funds",
		Usage: "attached funds as a comma separated list, e.g. 10000000hbd",
	}
)
