// cmd/evalstats/main.go
//
// Prints per-family statistics for a saved KK/KKP/KPP table directory so
// a training run can be sanity-checked without loading it into a search.
package main

import (
	"flag"
	"fmt"
	"os"

	"shogi-kppt/kppt"
)

type channelStats struct {
	min, max int64
	sum      int64
	nonzero  int64
	total    int64
}

func (s *channelStats) add(v int64) {
	if s.total == 0 || v < s.min {
		s.min = v
	}
	if s.total == 0 || v > s.max {
		s.max = v
	}
	s.sum += v
	if v != 0 {
		s.nonzero++
	}
	s.total++
}

func (s *channelStats) print(name string) {
	mean := float64(s.sum) / float64(s.total)
	pct := 100 * float64(s.nonzero) / float64(s.total)
	fmt.Printf("%-12s min=%-8d max=%-8d mean=%-12.4f nonzero=%d/%d (%.2f%%)\n",
		name, s.min, s.max, mean, s.nonzero, s.total, pct)
}

func main() {
	dir := flag.String("dir", "eval", "Directory holding the KK/KKP/KPP table files")
	flag.Parse()

	ev := kppt.NewEvalTable()
	if err := ev.Load(*dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tables: %v\n", err)
		os.Exit(1)
	}

	var kkBoard, kkTurn channelStats
	for k0 := range ev.KK {
		for k1 := range ev.KK[k0] {
			kkBoard.add(int64(ev.KK[k0][k1][0]))
			kkTurn.add(int64(ev.KK[k0][k1][1]))
		}
	}

	var kkpBoard, kkpTurn channelStats
	for k0 := range ev.KKP {
		for k1 := range ev.KKP[k0] {
			for p := range ev.KKP[k0][k1] {
				kkpBoard.add(int64(ev.KKP[k0][k1][p][0]))
				kkpTurn.add(int64(ev.KKP[k0][k1][p][1]))
			}
		}
	}

	var kppBoard, kppTurn channelStats
	for k := range ev.KPP {
		for p0 := range ev.KPP[k] {
			for p1 := range ev.KPP[k][p0] {
				kppBoard.add(int64(ev.KPP[k][p0][p1][0]))
				kppTurn.add(int64(ev.KPP[k][p0][p1][1]))
			}
		}
	}

	fmt.Printf("Tables loaded from %s\n\n", *dir)
	kkBoard.print("KK[board]")
	kkTurn.print("KK[turn]")
	kkpBoard.print("KKP[board]")
	kkpTurn.print("KKP[turn]")
	kppBoard.print("KPP[board]")
	kppTurn.print("KPP[turn]")
}
