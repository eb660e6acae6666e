// File: cmd/chatinspect/main.go
//
// chatinspect prints a user's chat inbox straight from the database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/iyunix/go-workshopchat/internal/config"
	"github.com/iyunix/go-workshopchat/internal/database"
	"github.com/iyunix/go-workshopchat/internal/domain"
	chatrepo "github.com/iyunix/go-workshopchat/internal/repository/chat"
	"github.com/iyunix/go-workshopchat/internal/repository/directory"
	msgrepo "github.com/iyunix/go-workshopchat/internal/repository/message"
	"github.com/iyunix/go-workshopchat/internal/services"
	chatservice "github.com/iyunix/go-workshopchat/internal/services/chat"
)

func main() {
	userID := flag.String("user", "", "User ID whose inbox to print")
	roleName := flag.String("role", "parent", "Conversation side: provider or parent")
	flag.Parse()

	role, err := domain.ParseRole(*roleName)
	if err != nil || *userID == "" {
		log.Fatal("usage: chatinspect -user <id> -role provider|parent")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	db, err := database.Open(database.Options{Driver: cfg.DBDriver, DSN: cfg.DatabaseDSN})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	logger := &services.NoOpLogger{}
	chatCfg := chatservice.DefaultConfig()
	dirRepo := directory.NewDirectoryRepository(db, logger)
	roomRepo := chatrepo.NewChatRoomRepository(db, logger)
	messageRepo := msgrepo.NewMessageRepository(db, logger)

	chatService, err := services.NewChatService(
		chatservice.NewOwnershipGate(dirRepo, dirRepo, logger),
		chatservice.NewRoomRegistry(roomRepo, chatCfg, logger),
		chatservice.NewMessageStore(messageRepo, chatCfg, logger),
		chatservice.NewReadStateTracker(messageRepo, chatCfg, logger),
		logger,
	)
	if err != nil {
		log.Fatalf("init chat service: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	summaries, err := chatService.ListMyRooms(ctx, *userID, role)
	if err != nil {
		log.Fatalf("list rooms: %v", err)
	}
	if len(summaries) == 0 {
		fmt.Println("no rooms")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Room", "Workshop", "Parent", "Blocked", "Unread", "Last message", "Last at"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	for _, s := range summaries {
		last, lastAt := "-", "-"
		if s.LastMessage != nil {
			last = truncate(s.LastMessage.Text, 40)
			lastAt = s.LastMessage.CreatedDateTime.Format(time.RFC3339)
		}
		table.Append([]string{
			s.Room.ID.String(),
			s.Room.WorkshopID.String(),
			s.Room.ParentID.String(),
			strconv.FormatBool(s.Room.IsBlockedByProvider),
			strconv.FormatInt(s.UnreadCount, 10),
			last,
			lastAt,
		})
	}
	table.Render()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
