// check_data 校验数据文件
//
// 解析 ride.yaml 和 alphabet.yaml（与游戏启动时相同的校验），
// 打印站点、调色板数量和文件摘要，任何错误都以非零状态退出。
package main

import (
	"crypto/md5"
	"flag"
	"fmt"
	"os"

	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/funfact"
)

var (
	alphabetPath = flag.String("alphabet", "data/alphabet.yaml", "字母表文件")
	ridePath     = flag.String("config", "data/ride.yaml", "运行参数文件")
	showFacts    = flag.Bool("facts", false, "打印每一站的离线趣味知识")
)

func main() {
	flag.Parse()
	failed := false

	cfg, err := config.LoadGameConfig(*ridePath)
	if err != nil {
		fmt.Printf("❌ %s: %v\n", *ridePath, err)
		failed = true
	} else {
		printDigest(*ridePath)
		fmt.Printf("✅ 调色板数量: %d\n", len(cfg.Palettes))
		fmt.Printf("✅ 轨道: 半径 %.1f, %d 段\n", cfg.Track.Radius, cfg.Track.TubularSegments)
		fmt.Printf("✅ 趣味知识模型: %s (超时 %v)\n", cfg.FunFact.Model, cfg.FunFact.Timeout)
	}

	alphabet, err := config.LoadAlphabet(*alphabetPath)
	if err != nil {
		fmt.Printf("❌ %s: %v\n", *alphabetPath, err)
		failed = true
	} else {
		printDigest(*alphabetPath)
		fmt.Printf("✅ 站点数量: %d\n", alphabet.Len())
		for i, entry := range alphabet {
			fmt.Printf("   %2d %s %-10s %s %s\n", i, entry.Letter, entry.Word, entry.Emoji, entry.Color.Hex())
			if *showFacts {
				fmt.Printf("      %s\n", funfact.OfflineFact(entry))
			}
		}
	}

	if failed {
		os.Exit(1)
	}
}

func printDigest(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	fmt.Printf("✅ %s: %d bytes, MD5 %x\n", path, len(data), md5.Sum(data))
}
