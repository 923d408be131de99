package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"nomassess/internal/assess"
	"nomassess/internal/export"
	"nomassess/internal/inventory"
	"nomassess/internal/nomination"
	"nomassess/internal/sheet"

	"go.uber.org/zap"
)

func main() {
	var (
		inventoryPath  string
		nominationPath string
		choicesFlag    string
	)
	flag.StringVar(&inventoryPath, "inventory", "", "主数据 CSV 文件路径")
	flag.StringVar(&nominationPath, "nomination", "", "申请表 CSV 文件路径")
	flag.StringVar(&choicesFlag, "choices", "", "消歧选择，形如 \"100=NE-B,101=NE-A\"")
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}
	cmd := flag.Arg(0)

	if inventoryPath == "" || nominationPath == "" {
		fmt.Fprintln(os.Stderr, "必须同时指定 -inventory 和 -nomination")
		os.Exit(1)
	}

	ctx := context.Background()

	inv, err := loadInventory(inventoryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载主数据失败: %v\n", err)
		os.Exit(1)
	}
	noms, err := loadNominations(nominationPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载申请表失败: %v\n", err)
		os.Exit(1)
	}

	store := inventory.NewStore(&inventory.StaticClient{Table: inv}, 1, 0, zap.NewNop())
	if err := store.Refresh(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "装载主数据失败: %v\n", err)
		os.Exit(1)
	}
	assessor := assess.NewAssessor(store, assess.DefaultVerdictConfig(), 1, zap.NewNop())

	switch cmd {
	case "run":
		err = runAssess(ctx, assessor, noms, parseChoices(choicesFlag))
	case "preflight":
		err = runPreflight(assessor, noms)
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s 执行失败: %v\n", cmd, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("用法: assess -inventory inv.csv -nomination nom.csv [-choices \"100=NE-B\"] {run|preflight}")
}

func loadInventory(path string) (inventory.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return inventory.Table{}, err
	}
	defer f.Close()
	rows, err := sheet.ReadAll(f)
	if err != nil {
		return inventory.Table{}, err
	}
	return inventory.FromCSV(rows)
}

func loadNominations(path string) (nomination.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nomination.Table{}, err
	}
	defer f.Close()
	return nomination.ParseCSV(f)
}

func parseChoices(raw string) map[string]string {
	choices := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		choices[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return choices
}

func runAssess(ctx context.Context, assessor *assess.Assessor, noms nomination.Table, choices map[string]string) error {
	result, err := assessor.Run(ctx, noms, choices)
	if err != nil {
		return err
	}
	return export.WriteCSV(os.Stdout, result.Columns, result.Records)
}

func runPreflight(assessor *assess.Assessor, noms nomination.Table) error {
	ambiguities, err := assessor.Preflight(noms)
	if err != nil {
		return err
	}
	if len(ambiguities) == 0 {
		fmt.Println("无需消歧")
		return nil
	}
	for _, amb := range ambiguities {
		fmt.Printf("%s: %s\n", amb.PlaID, strings.Join(amb.Candidates, " | "))
	}
	return nil
}
