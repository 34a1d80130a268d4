package main

import (
	"bytes"
	"flag"
	"fmt"

	"github.com/devlights/gomy/output"
	"github.com/sirupsen/logrus"

	"github.com/ryogrid/samehada-bufmgr/common"
	"github.com/ryogrid/samehada-bufmgr/storage/buffer"
	"github.com/ryogrid/samehada-bufmgr/storage/disk"
	"github.com/ryogrid/samehada-bufmgr/types"
)

// pageFile is what main needs from a DiskFile or a VirtualFile
type pageFile interface {
	disk.File
	Close() error
}

// this entry point drives a write, evict, flush and read-back workload through the buffer pool
func main() {
	var configPath string
	var numPages int
	flag.StringVar(&configPath, "config", "", "settings file (.toml or .ini)")
	flag.IntVar(&numPages, "pages", 2*common.DefaultBufferPoolSize, "number of pages to write and read back")
	flag.Parse()

	settings, err := common.LoadSettings(configPath)
	if err != nil {
		common.Logger.WithError(err).Fatal("can't load settings")
	}
	common.SetLogLevel(settings.LogLevel)

	file, err := openFile(settings)
	if err != nil {
		common.Logger.WithError(err).Fatal("can't open page file")
	}
	defer file.Close()

	bpm := buffer.NewBufferPoolManager(settings.BufferPoolSize)
	common.LogFields(logrus.Fields{
		"file":   file.Name(),
		"frames": bpm.GetPoolSize(),
		"pages":  numPages,
	}).Info("start workload")

	if err := runWorkload(bpm, file, numPages); err != nil {
		common.Logger.WithError(err).Error("workload failed")
	}

	stats := bpm.Stats()
	output.Stdoutl("[stats]", fmt.Sprintf("hits=%d misses=%d reads=%d allocs=%d disposes=%d evictions=%d write-backs=%d",
		stats.Hits, stats.Misses, stats.Reads, stats.Allocs, stats.Disposes, stats.Evictions, stats.WriteBacks))
	bpm.PrintSelf()

	if err := bpm.Shutdown(); err != nil {
		common.Logger.WithError(err).Error("shutdown failed")
	}
}

func openFile(settings *common.Settings) (pageFile, error) {
	if settings.EnableOnMemStorage {
		return disk.NewVirtualFile(settings.DBFileName), nil
	}
	file, err := disk.OpenDiskFile(settings.DBFileName)
	if err != nil {
		return nil, err
	}
	return file, nil
}

func pageContent(pageID types.PageID) []byte {
	return []byte(fmt.Sprintf("page %d", pageID))
}

func runWorkload(bpm *buffer.BufferPoolManager, file disk.File, numPages int) error {
	pageIDs := make([]types.PageID, 0, numPages)
	for i := 0; i < numPages; i++ {
		pageID, pg, err := bpm.AllocPage(file)
		if err != nil {
			return err
		}
		pg.Copy(0, pageContent(pageID))
		if err := bpm.UnpinPage(file, pageID, true); err != nil {
			return err
		}
		pageIDs = append(pageIDs, pageID)
	}

	if err := bpm.FlushFile(file); err != nil {
		return err
	}

	for _, pageID := range pageIDs {
		pg, err := bpm.ReadPage(file, pageID)
		if err != nil {
			return err
		}
		want := pageContent(pageID)
		if !bytes.Equal(pg.Data()[:len(want)], want) {
			return fmt.Errorf("page %d of %s has unexpected content", pageID, file.Name())
		}
		if err := bpm.UnpinPage(file, pageID, false); err != nil {
			return err
		}
	}
	return nil
}
