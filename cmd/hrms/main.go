package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/celerix-dev/celerix-hrms/internal/logger"
	"github.com/celerix-dev/celerix-hrms/pkg/schema"
	"github.com/celerix-dev/celerix-hrms/pkg/sdk"
)

func main() {
	args := os.Args[1:]
	format := os.Getenv("HRMS_OUTPUT")
	if len(args) >= 2 && args[0] == "-o" {
		format = args[1]
		args = args[2:]
	}
	if len(args) < 1 {
		printUsage()
		return
	}

	logger.New(logger.Config{Env: "development", Level: envOr("HRMS_LOG_LEVEL", "warn")})

	svc, err := sdk.New("")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open HRMS")
	}

	ctx := context.Background()
	if email := os.Getenv("HRMS_EMAIL"); email != "" {
		if _, err := svc.Login(ctx, email, os.Getenv("HRMS_PASSWORD")); err != nil {
			log.Fatal().Err(err).Str("email", email).Msg("login failed")
		}
	}

	out := printer{format: format}
	command := strings.ToUpper(args[0])
	args = args[1:]

	switch command {
	case "PING":
		fmt.Println("PONG")

	case "LOGIN", "WHOAMI":
		if len(args) >= 2 {
			sess, err := svc.Login(ctx, args[0], args[1])
			if err != nil {
				log.Fatal().Err(err).Msg("login failed")
			}
			out.print(sess.User)
			return
		}
		if !svc.IsAuthorized() {
			log.Fatal().Msg("not logged in (set HRMS_EMAIL and HRMS_PASSWORD)")
		}
		fmt.Println("OK")

	case "EMPLOYEES":
		query := ""
		if len(args) > 0 {
			query = strings.Join(args, " ")
		}
		list, err := svc.ListEmployees(query)
		if err != nil {
			log.Fatal().Err(err).Send()
		}
		out.print(list)

	case "EMPLOYEE":
		if len(args) < 1 {
			log.Fatal().Msg("Usage: hrms EMPLOYEE <id>")
		}
		e, err := svc.GetEmployee(args[0])
		if err != nil {
			log.Fatal().Err(err).Send()
		}
		out.print(e)

	case "ADD_EMPLOYEE":
		if len(args) < 1 {
			log.Fatal().Msg("Usage: hrms ADD_EMPLOYEE <json>")
		}
		var fields schema.EmployeeFields
		mustDecode(args[0], &fields)
		if fields.Status == "" {
			fields.Status = schema.EmployeeActive
		}
		e, err := svc.AddEmployee(fields)
		if err != nil {
			log.Fatal().Err(err).Send()
		}
		out.print(e)

	case "UPDATE_EMPLOYEE":
		if len(args) < 2 {
			log.Fatal().Msg("Usage: hrms UPDATE_EMPLOYEE <id> <json>")
		}
		var patch schema.EmployeePatch
		mustDecode(args[1], &patch)
		e, err := svc.UpdateEmployee(args[0], patch)
		if err != nil {
			log.Fatal().Err(err).Send()
		}
		out.print(e)

	case "DEL_EMPLOYEE":
		if len(args) < 1 {
			log.Fatal().Msg("Usage: hrms DEL_EMPLOYEE <id>")
		}
		if err := svc.DeleteEmployee(args[0]); err != nil {
			log.Fatal().Err(err).Send()
		}
		fmt.Println("OK")

	case "ATTENDANCE":
		date := ""
		if len(args) > 0 && args[0] != sdk.AllDates {
			date = args[0]
		}
		list, err := svc.ListAttendance(date)
		if err != nil {
			log.Fatal().Err(err).Send()
		}
		out.print(list)

	case "RECORD":
		if len(args) < 1 {
			log.Fatal().Msg("Usage: hrms RECORD <json>")
		}
		var fields schema.AttendanceFields
		mustDecode(args[0], &fields)
		if fields.RecordedBy == "" {
			fields.RecordedBy = "system"
		}
		entry, err := svc.RecordAttendance(fields)
		if err != nil {
			log.Fatal().Err(err).Send()
		}
		out.print(entry)

	case "DASHBOARD":
		d, err := svc.Dashboard()
		if err != nil {
			log.Fatal().Err(err).Send()
		}
		out.print(d)

	case "DUMP":
		s, err := svc.Snapshot()
		if err != nil {
			log.Fatal().Err(err).Send()
		}
		out.print(s)

	case "MIGRATE":
		if len(args) < 1 {
			log.Fatal().Msg("Usage: hrms MIGRATE <dataDir>")
		}
		dst, err := sdk.Open(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("dir", args[0]).Msg("failed to open target")
		}
		if err := sdk.Migrate(ctx, svc, dst); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
		fmt.Println("OK")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("HRMS CLI - employee directory and attendance log")
	fmt.Println("\nUsage:")
	fmt.Println("  hrms [-o json|yaml] <command> [args]")
	fmt.Println("\nCommands:")
	fmt.Println("  hrms PING")
	fmt.Println("  hrms LOGIN <email> <password>")
	fmt.Println("  hrms WHOAMI")
	fmt.Println("  hrms EMPLOYEES [query]")
	fmt.Println("  hrms EMPLOYEE <id>")
	fmt.Println("  hrms ADD_EMPLOYEE <json>")
	fmt.Println("  hrms UPDATE_EMPLOYEE <id> <json>")
	fmt.Println("  hrms DEL_EMPLOYEE <id>")
	fmt.Println("  hrms ATTENDANCE [YYYY-MM-DD|all]")
	fmt.Println("  hrms RECORD <json>")
	fmt.Println("  hrms DASHBOARD")
	fmt.Println("  hrms DUMP")
	fmt.Println("  hrms MIGRATE <dataDir>")
	fmt.Println("\nEnvironment Variables:")
	fmt.Println("  HRMS_ADDR            Address of a running daemon (embedded mode when unset)")
	fmt.Println("  HRMS_DATA_DIR        Data directory for embedded mode (default: ./data)")
	fmt.Println("  HRMS_CONFIG          YAML config shared with hrmsd (schema version, storage and encryption keys)")
	fmt.Println("  HRMS_EMAIL           Login email used before each command")
	fmt.Println("  HRMS_PASSWORD        Login password")
	fmt.Println("  HRMS_TLS             Set to false to talk plain HTTP to the daemon")
	fmt.Println("  HRMS_OUTPUT          json (default) or yaml")
}

type printer struct {
	format string
}

func (p printer) print(v any) {
	var (
		out []byte
		err error
	)
	if strings.EqualFold(p.format, "yaml") {
		out, err = yaml.Marshal(v)
	} else {
		out, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(strings.TrimRight(string(out), "\n"))
}

func mustDecode(raw string, v any) {
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		log.Fatal().Err(err).Msg("invalid JSON argument")
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
