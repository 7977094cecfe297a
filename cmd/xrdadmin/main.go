// Command xrdadmin is a thin CLI over the xrdadmin administrative client
// core. It runs against the in-memory fixture driver loaded from a script
// file, since real socket I/O and the security handshake are external
// collaborators this core does not implement (see [xrdadmin.Driver]).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	xrdadmin "github.com/xrootd-go/xrdadmin"
	"github.com/xrootd-go/xrdadmin/internal/fixture"
	"github.com/xrootd-go/xrdadmin/pkg/admin"
)

var opt struct {
	URL        string
	ScriptFile string
	Op         string
	Path       string
	Writable   bool
	NoWait     bool
	Help       bool
}

func init() {
	pflag.StringVarP(&opt.URL, "url", "u", "", "cluster redirector URL, e.g. root://m0.example.com")
	pflag.StringVarP(&opt.ScriptFile, "script", "s", "", "JSON fixture script describing canned driver responses")
	pflag.StringVarP(&opt.Op, "op", "o", "stat", "operation to run: stat, statvfs, dirlist, locate-one, locate-all")
	pflag.StringVarP(&opt.Path, "path", "p", "/", "path argument for the operation")
	pflag.BoolVarP(&opt.Writable, "writable", "w", false, "locate-one: require a writable data server")
	pflag.BoolVarP(&opt.NoWait, "nowait", "n", false, "locate: do not block on pending resources")
	pflag.BoolVarP(&opt.Help, "help", "h", false, "show this help text")
}

func main() {
	pflag.Parse()
	if opt.Help || opt.URL == "" {
		fmt.Printf("usage: %s --url root://host --op stat --path /data/foo\n\noptions:\n%s", os.Args[0], pflag.CommandLine.FlagUsages())
		if opt.Help {
			os.Exit(2)
		}
		os.Exit(0)
	}

	cfg := xrdadmin.LoadConfig()
	logger := xrdadmin.NewLogger(cfg)

	driver := fixture.NewDriver()
	if opt.ScriptFile != "" {
		if err := loadScript(driver, opt.ScriptFile); err != nil {
			logger.Error("failed to load fixture script", "err", err)
			os.Exit(2)
		}
	}

	client := admin.NewClient(driver, cfg, logger)
	ctx := context.Background()

	if err := client.Connect(ctx, opt.URL); err != nil {
		logger.Error("connect failed", "err", err)
		os.Exit(1)
	}

	if err := runOp(ctx, client); err != nil {
		logger.Error("operation failed", "op", opt.Op, "err", err)
		os.Exit(1)
	}
}

func runOp(ctx context.Context, client *admin.Client) error {
	switch opt.Op {
	case "stat":
		id, size, flags, modtime, err := client.Stat(ctx, opt.Path)
		if err != nil {
			return err
		}
		fmt.Printf("id=%d size=%d flags=%d modtime=%d\n", id, size, flags, modtime)
	case "statvfs":
		info, err := client.StatVFS(ctx, opt.Path)
		if err != nil {
			return err
		}
		fmt.Printf("%+v\n", info)
	case "dirlist":
		entries, err := client.DirList(ctx, opt.Path)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Println(e)
		}
	case "locate-one":
		info, err := client.LocateOne(ctx, opt.Path, opt.Writable, opt.NoWait)
		if err != nil {
			return err
		}
		fmt.Printf("%+v\n", info)
	case "locate-all":
		all, err := client.LocateAll(ctx, opt.Path, opt.NoWait)
		if err != nil {
			return err
		}
		for _, info := range all {
			fmt.Printf("%+v\n", info)
		}
	default:
		return fmt.Errorf("unknown op %q", opt.Op)
	}
	return nil
}

// scriptFile is the on-disk shape of a --script fixture file: per-endpoint
// canned responses keyed by request name.
type scriptFile struct {
	Endpoints map[string]map[string]struct {
		Status  int    `json:"status"`
		Payload string `json:"payload"`
	} `json:"endpoints"`
}

var reqIDByName = map[string]xrdadmin.RequestID{
	"stat":     xrdadmin.ReqStat,
	"statx":    xrdadmin.ReqStatX,
	"dirlist":  xrdadmin.ReqDirList,
	"rm":       xrdadmin.ReqRm,
	"rmdir":    xrdadmin.ReqRmdir,
	"chmod":    xrdadmin.ReqChmod,
	"mkdir":    xrdadmin.ReqMkdir,
	"mv":       xrdadmin.ReqMv,
	"truncate": xrdadmin.ReqTruncate,
	"prepare":  xrdadmin.ReqPrepare,
	"protocol": xrdadmin.ReqProtocol,
	"query":    xrdadmin.ReqQuery,
	"locate":   xrdadmin.ReqLocate,
}

func loadScript(driver *fixture.Driver, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var s scriptFile
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}
	for endpoint, byOp := range s.Endpoints {
		for opName, resp := range byOp {
			reqID, ok := reqIDByName[opName]
			if !ok {
				return fmt.Errorf("unknown request kind %q", opName)
			}
			driver.Script(endpoint, reqID, xrdadmin.ServerStatus(resp.Status), []byte(resp.Payload))
		}
	}
	return nil
}
