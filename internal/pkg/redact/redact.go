// redact — хелперы для безопасного логирования чувствительных значений.
// Токены и пароли в логи не попадают никогда; e-mail маскируется до
// первых двух символов локальной части.
package redact

import (
	"strconv"
	"strings"
)

func Email(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := parts[0], parts[1]
	if len(local) > 2 {
		local = local[:2] + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

// Token — короткий отпечаток токена для корреляции записей без раскрытия
// самого значения: первые 6 символов + длина.
func Token(s string) string {
	if len(s) <= 6 {
		return "[REDACTED_TOKEN]"
	}

	return s[:6] + "…(" + strconv.Itoa(len(s)) + ")"
}
