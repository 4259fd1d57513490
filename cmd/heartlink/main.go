package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartlink-app/go-heartlink-client/internal/config"
	"github.com/heartlink-app/go-heartlink-client/internal/featuregate"
	"github.com/heartlink-app/go-heartlink-client/internal/gifts"
	"github.com/heartlink-app/go-heartlink-client/internal/httpclient"
	"github.com/heartlink-app/go-heartlink-client/internal/messages"
	"github.com/heartlink-app/go-heartlink-client/internal/models"
	"github.com/heartlink-app/go-heartlink-client/internal/pkg/deviceid"
	"github.com/heartlink-app/go-heartlink-client/internal/profiles"
	"github.com/heartlink-app/go-heartlink-client/internal/session"
	"github.com/heartlink-app/go-heartlink-client/internal/subscriptions"
	"github.com/heartlink-app/go-heartlink-client/internal/tokenstore"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const usage = `usage: heartlink [--config path] <command>

commands:
  login <email> <password>     вход; токены сохраняются локально
  me                           текущий профиль
  discover [cursor]            страница кандидатов
  swipe <id> <like|pass>       свайп по карточке
  conversations                превью диалогов
  gifts                        каталог подарков
  gift <target-id> <gift-id>   отправить подарок
  features <name...> [--any]   проверка подписочных фич
  verify <token>               подтверждение e-mail по токену из письма
  resend <email>               повторное письмо подтверждения
  logout                       выход и очистка токенов
`

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	store, err := tokenstore.NewFile(cfg.Storage.TokenPath)
	if err != nil {
		log.Error("tokenstore_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	client := httpclient.New(cfg, store, log)

	if id, derr := deviceid.Load(cfg.Storage.DeviceIDPath); derr != nil {
		log.Warn("device_id_load_failed", slog.String("err", derr.Error()))
	} else {
		client.SetDeviceID(id)
	}

	sess := session.New(client, store, cfg.Auth, log)
	subs := subscriptions.New(client)
	gate := featuregate.New(sess, subs)
	prof := profiles.New(client, sess)
	msgs := messages.New(client)
	gift := gifts.New(client)

	// login/verify/resend работают из Anonymous; остальным нужна сессия.
	switch args[0] {
	case "login", "verify", "resend":
	default:
		if st := sess.Initialize(rootCtx); st != session.StateAuthenticated && args[0] != "logout" {
			log.Error("not_authenticated", slog.String("reason", sess.InvalidateReason()))
			fmt.Fprintln(os.Stderr, "not authenticated: run `heartlink login` first")
			os.Exit(1)
		}
	}

	if err := run(rootCtx, args, cliDeps{sess: sess, gate: gate, prof: prof, msgs: msgs, gifts: gift, subs: subs}); err != nil {
		log.Error("command_failed", slog.String("cmd", args[0]), slog.String("err", err.Error()))
		os.Exit(1)
	}
}

type cliDeps struct {
	sess  *session.Manager
	gate  *featuregate.Gate
	prof  *profiles.Service
	msgs  *messages.Service
	gifts *gifts.Service
	subs  *subscriptions.Service
}

func run(ctx context.Context, args []string, d cliDeps) error {
	switch cmd := args[0]; cmd {
	case "login":
		if len(args) != 3 {
			return fmt.Errorf("usage: login <email> <password>")
		}

		res, err := d.sess.Login(ctx, args[1], args[2])
		if err != nil {
			return err
		}

		if res.Outcome == session.LoginRequiresVerification {
			fmt.Println("email not verified: check your inbox or run `heartlink resend`")
			return nil
		}

		return printJSON(res.User)

	case "me":
		user, err := d.sess.AuthenticatedUser()
		if err != nil {
			return err
		}

		return printJSON(user)

	case "discover":
		cursor := ""
		if len(args) > 1 {
			cursor = args[1]
		}

		page, err := d.prof.Discover(ctx, cursor)
		if err != nil {
			return err
		}

		return printJSON(page)

	case "swipe":
		if len(args) != 3 {
			return fmt.Errorf("usage: swipe <id> <like|pass>")
		}

		var id int64
		if _, err := fmt.Sscanf(args[1], "%d", &id); err != nil {
			return fmt.Errorf("invalid target id %q", args[1])
		}

		res, err := d.prof.Swipe(ctx, id, models.SwipeDirection(args[2]))
		if err != nil {
			return err
		}

		return printJSON(res)

	case "conversations":
		page, err := d.msgs.Conversations(ctx, "")
		if err != nil {
			return err
		}

		return printJSON(page)

	case "gifts":
		cat, err := d.gifts.Catalog(ctx)
		if err != nil {
			return err
		}

		return printJSON(cat)

	case "gift":
		if len(args) != 3 {
			return fmt.Errorf("usage: gift <target-id> <gift-id>")
		}

		var target, giftID int64
		if _, err := fmt.Sscanf(args[1], "%d", &target); err != nil {
			return fmt.Errorf("invalid target id %q", args[1])
		}
		if _, err := fmt.Sscanf(args[2], "%d", &giftID); err != nil {
			return fmt.Errorf("invalid gift id %q", args[2])
		}

		res, err := d.gifts.Send(ctx, target, giftID, "")
		if err != nil {
			return err
		}

		return printJSON(res)

	case "features":
		mode := featuregate.ModeAll
		names := make([]string, 0, len(args)-1)
		for _, a := range args[1:] {
			if a == "--any" {
				mode = featuregate.ModeAny
				continue
			}
			names = append(names, a)
		}

		if len(names) == 0 {
			return fmt.Errorf("usage: features <name...> [--any]")
		}

		return printJSON(d.gate.Check(ctx, names, mode))

	case "verify":
		if len(args) != 2 {
			return fmt.Errorf("usage: verify <token>")
		}

		return d.sess.VerifyEmail(ctx, args[1])

	case "resend":
		if len(args) != 2 {
			return fmt.Errorf("usage: resend <email>")
		}

		return d.sess.ResendVerification(ctx, args[1])

	case "logout":
		return d.sess.Logout(ctx)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
