package process_reminders

import "time"

// Request модель запроса на прогон напоминаний
// Нулевой Now заменяется текущим временем
type Request struct {
	Now time.Time // Момент прогона (опционально, для ручного запуска)
}

// Response итог прогона напоминаний
type Response struct {
	WindowFrom time.Time // Начало окна дат
	WindowTo   time.Time // Конец окна дат

	Claimed int // Бронирований захвачено этим прогоном
	Skipped int // Пропущено: напоминание уже отправлено параллельным прогоном
	Muted   int // Пропущено: компания отключила рассылку напоминаний
	Failed  int // Уведомление не доставлено (ошибка залогирована)
}
