package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kirillqa17/tech-support-bot/internal/subscription"
)

const helpText = `<b>🛠 Список административных команд:</b>

<b>📋 Информация:</b>
1. <b>/info TG_ID</b> — Подробная информация о пользователе
   <i>Пример:</i> <code>/info 123456789</code>

2. <b>/squads TG_ID</b> — Текущие сквады пользователя
   <i>Пример:</i> <code>/squads 123456789</code>

<b>⚙️ Управление подпиской:</b>
3. <b>/extend TG_ID PLAN DAYS</b> — Продлить подписку
   <i>Пример:</i> <code>/extend 123456789 base 30</code>
   <i>Планы:</i> base, bsbase, family, bsfamily, trial, free

4. <b>/toggle_pro TG_ID on|off</b> — Включить/выключить PRO режим
   <i>Пример:</i> <code>/toggle_pro 123456789 on</code>
   <i>PRO добавляет:</i> XHTTP, gRPC, Trojan, Shadowsocks

5. <b>/disable_device_limit TG_ID</b> — Отключить лимит устройств
   <i>Пример:</i> <code>/disable_device_limit 123456789</code>

6. <b>/compensate DAYS</b> — Начислить компенсацию всем активным юзерам
   <i>Пример:</i> <code>/compensate 7</code>
   Продлит подписку на N дней по текущему тарифу каждого юзера

<b>🎫 Тикеты:</b>
7. <b>/reply</b> — Показать активные тикеты
8. Ответьте на сообщение тикета, чтобы отправить ответ пользователю
9. Используйте кнопку «Закрыть тикет» для завершения

<b>/help</b> — Эта справка`

// viewNoticePrefix opens every ticket-view notice; the reply router uses it
// to distinguish a stale notice from an unrelated message.
const viewNoticePrefix = "Вы просматриваете тикет @"

// mskOffset converts subscription timestamps to Moscow time for display.
const mskOffset = 3 * time.Hour

// formatSubscriptionEnd renders an ISO-8601 subscription end as a Moscow
// timestamp. Unparseable input is shown verbatim.
func formatSubscriptionEnd(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.UTC().Add(mskOffset).Format("02.01.2006, 15:04") + " МСК"
}

// formatUserInfo renders the account summary for /info in HTML.
func formatUserInfo(tgID int64, info *subscription.UserInfo) string {
	status := "Неактивна"
	if info.IsActive == 1 {
		status = "Активна"
	}
	pro := "❌ Выключен"
	if info.IsPro {
		pro = "⚡ Включён"
	}
	autoRenew := "❌ Нет"
	if info.AutoRenew {
		autoRenew = "✅ Да"
	}
	trialUsed := "Нет"
	if info.IsUsedTrial {
		trialUsed = "Да"
	}
	username := info.Username
	if username == "" {
		username = "—"
	}
	referralID := "—"
	if info.ReferralID != nil {
		referralID = fmt.Sprintf("%d", *info.ReferralID)
	}
	subEnd := "—"
	if info.SubscriptionEnd != "" {
		subEnd = formatSubscriptionEnd(info.SubscriptionEnd)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>📋 Информация о пользователе</b>\n\n")
	fmt.Fprintf(&b, "<b>ID:</b> <code>%d</code>\n", tgID)
	fmt.Fprintf(&b, "<b>Username:</b> @%s\n", username)
	fmt.Fprintf(&b, "<b>UUID:</b> <code>%s</code>\n\n", orDash(info.UUID))
	fmt.Fprintf(&b, "<b>📊 Подписка:</b>\n")
	fmt.Fprintf(&b, "  Тариф: <b>%s</b>\n", subscription.PlanDisplay(orDash(info.Plan)))
	fmt.Fprintf(&b, "  PRO режим: %s\n", pro)
	fmt.Fprintf(&b, "  Статус: %s\n", status)
	fmt.Fprintf(&b, "  Окончание: %s\n", subEnd)
	fmt.Fprintf(&b, "  Автопродление: %s\n\n", autoRenew)
	fmt.Fprintf(&b, "<b>🔧 Настройки:</b>\n")
	fmt.Fprintf(&b, "  Лимит устройств: %d\n", info.DeviceLimit)
	fmt.Fprintf(&b, "  Триал использован: %s\n\n", trialUsed)
	fmt.Fprintf(&b, "<b>👥 Рефералы:</b>\n")
	fmt.Fprintf(&b, "  Приглашён: %s\n", referralID)
	fmt.Fprintf(&b, "  Приглашённые: %d чел.\n", len(info.Referrals))
	fmt.Fprintf(&b, "  Оплаченные рефы: %d\n\n", info.PayedRefs)
	fmt.Fprintf(&b, "<b>🔗 Ссылка на подписку:</b>\n<code>%s</code>", orDash(info.SubLink))
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// formatAPIError maps a remote-call error to an admin-facing message,
// distinguishing "not found" from other failures.
func formatAPIError(tgID int64, err error) string {
	if errors.Is(err, subscription.ErrNotFound) {
		return fmt.Sprintf("❌ Пользователь %d не найден", tgID)
	}
	return fmt.Sprintf("❌ Ошибка: %v", err)
}

// viewTicketCallback builds the callback token for the ticket-view button.
func viewTicketCallback(userID int64) string {
	return fmt.Sprintf("view_ticket_%d", userID)
}

// closeTicketCallback builds the callback token for the close button.
func closeTicketCallback(userID int64) string {
	return fmt.Sprintf("close_ticket_%d", userID)
}
