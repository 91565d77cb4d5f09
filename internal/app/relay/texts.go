/*
Package relay contains the in-process core of the anonymous group-chat relay.

This file collects every user-facing text the relay sends. Replies addressed to
the acting participant carry the "[BOT]" prefix; announcements broadcast to the
whole chat carry "[Bot]", matching what long-time participants are used to.
*/
package relay

const (
	textWelcome = "[BOT] Добро пожаловать в анонимный чат для людей, столкнувшихся с онкологическим заболеванием. Это пространство создано для взаимопомощи и поддержки. Поделись с чатом, а чат поделится с тобой! 😊 \n" +
		"Чтобы выйти — /stop.\n\n" +
		"Твой ник: %s\n" +
		"Твой код: %s\n" +
		"Приятного общения!"

	textAlreadyInChat = "[BOT] Ты уже в чате под ником «%s». Для выхода — /stop."
	textLeftChat      = "[BOT] Ты вышел из чата. Возвращайся в любой момент через /start."

	broadcastJoined      = "[Bot] %s %s входит в чат."
	broadcastJoinedFirst = "[Bot] %s %s входит в чат. Он новенький!"
	broadcastLeft        = "[Bot] %s %s вышел из чата."
	broadcastRenamed     = "[Bot] %s %s сменил(а) ник на %s."
	broadcastHug         = "[Bot] %s %s обнял(а) %s!"
	broadcastPollHeader  = "[Bot] %s %s поставил(а) вопрос:\n%s"

	textNickPrompt  = "[BOT] Введи новый ник сообщением."
	textNickChanged = "[BOT] Новый ник: %s."
	textCancelled   = "[BOT] Отменено."

	textChatEmpty    = "[BOT] В чате никого нет."
	textRosterHeader = "[BOT] В чате %d (из %d):\n"

	textMsgPickRecipient = "[BOT] Выбери пользователя, чтобы отправить ЛС:"
	textMsgAwaitText     = "[BOT] Отправь сообщение, и оно будет доставлено пользователю %s %s."
	textMsgSentInline    = "[BOT] Личное сообщение отправлено для %s."
	textMsgSent          = "[BOT] Сообщение для %s %s отправлено."
	textMsgCancelled     = "Отправка ЛС отменена."
	textPrivateDelivery  = "[ЛС от %s]: %s"
	textInboxEmpty       = "[BOT] У тебя нет личных сообщений."
	textInboxHeader      = "[BOT] Твои личные сообщения (копия):\n\n"
	textInboxLine        = "От %s: %s"

	textHugPickTarget = "[BOT] Выбери, кого обнять:"
	textHugSent       = "Обнимашка отправлена!"
	textHugCancelled  = "Обнимашки отменены."

	textSearchFound    = "[BOT] Найдены:\n"
	textSearchNotFound = "[BOT] Никого не нашли."

	textPollPrompt = "[BOT] Начинаем опрос.\n\n" +
		"Введи вопрос и варианты ответа, каждый на новой строке, например:\n\n" +
		"Что делать?\n" +
		"Вариант1\n" +
		"Вариант2\n" +
		"/cancel чтобы отменить."
	textPollCancelled = "[BOT] Опрос отменён."
	textPollDone      = "[BOT] Твой опрос завершён."
	textVoteAccepted  = "Голос учтён!"

	textNotifySettings = "[BOT] Настройки уведомлений:"
	textNotifySaved    = "Настройка сохранена."

	captionPhoto = "%s %s прислал(а) фото"

	textHelp = "[BOT] Доступные команды:\n\n" +
		"/start - Войти в чат\n" +
		"/stop - Выйти из чата\n" +
		"/nick - Сменить ник\n" +
		"/list - Список пользователей\n" +
		"/msg - Отправить личное сообщение\n" +
		"/getmsg - Получить личные сообщения\n" +
		"/hug [CODE] - Обнять пользователя\n" +
		"/search [ТЕКСТ] - Поиск пользователя по нику\n" +
		"/poll - Создать опрос\n" +
		"/polldone - Завершить опрос\n" +
		"/notify - Настройки уведомлений\n" +
		"/ping - Проверить бота\n" +
		"/rules - Правила чата\n" +
		"/about - О боте\n\n" +
		"Для сообщений «от третьего лица» начинай строку со знака %. Приятного общения!"

	textRules = "[BOT] Правила чата:\n\n" +
		"😊Мы за адекватное и уютное общение среди участников нашего комьюнити и призываем Вас соблюдать порядки, устои и наши традиции.\n\n" +
		"🔸Запрещены призывы в личку, выпрашивание личных данных участников и отправка своих.\n" +
		"🔸Флирт, попытка найти девушек и зазывы их в личку.\n" +
		"🔸Оскорбление участников чата и переход на личности.\n" +
		"🔸Запрещен мат и обесценная лексика (Резиденты могут скрывать мат под спойлер).\n" +
		"🔸Запрещен флуд и поток бессвязного бреда.\n" +
		"🔸Контент шокирующего формата, порно и другая запрещенка.\n" +
		"🔸Общение только на русском языке в кириллической раскладке.\n" +
		"🔸Реклама, спам и ссылки на сторонние ресурсы запрещены.\n" +
		"🔸Разжигание конфликтов, провокации, споры на тему политики и религии запрещены.\n\n" +
		"❗️Модераторы могут по своему усмотрению применять меры наказания. Незнание правил не освобождает Вас от ответственности.\n\n" +
		"Рады каждому из Вас. Добро пожаловать в Чат!"

	textAbout = "[BOT] Это тестовый анонимный чат-бот. Приятного использования!"
	textPong  = "Pong!"
)
