package bot

// User-facing texts. The bot speaks Russian.
const (
	msgStart          = "Отправьте ссылку на видео, и я покажу превью и варианты скачивания."
	msgExtractFailed  = "Ошибка: не удалось получить информацию о видео. %v"
	msgStaleSession   = "Сессия устарела. Отправьте ссылку снова."
	msgDownloading    = "Скачивание %s…"
	msgDownloadFailed = "Не удалось скачать %s: %v"
	msgOversized      = "Файл %s слишком большой для загрузки ботом (>%dMB). Пожалуйста, выберите более низкое качество."
	msgDone           = "Готово: %s"

	labelFallback  = "Формат %d"
	labelRequested = "запрошенный формат"
)
