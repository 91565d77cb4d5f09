/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct. The messages are
the exact texts the relay sends back to the acting participant when an interaction fails.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: Input Validation Errors
	ErrNicknameTooLong:       {Code: ErrNicknameTooLong, Message: "[BOT] Ник слишком длинный (макс 15 символов)."},
	ErrUnknownCode:           {Code: ErrUnknownCode, Message: "[BOT] Не нашли пользователя с таким кодом."},
	ErrPollBlockTooShort:     {Code: ErrPollBlockTooShort, Message: "[BOT] Нужно минимум 1 вопрос и 1 вариант ответа."},
	ErrInvalidPollOption:     {Code: ErrInvalidPollOption, Message: "Неправильный вариант."},
	ErrInvalidNotifyInterval: {Code: ErrInvalidNotifyInterval, Message: "Неизвестный параметр."},
	ErrEmptySearchQuery:      {Code: ErrEmptySearchQuery, Message: "[BOT] /search <текст> — поиск в нике."},

	// 2xxx: Precondition Errors
	ErrNotInChat:     {Code: ErrNotInChat, Message: "[BOT] Тебя нет в чате. /start, чтобы войти."},
	ErrRecipientLeft: {Code: ErrRecipientLeft, Message: "[BOT] Похоже, пользователь вышел."},
	ErrPollNotFound:  {Code: ErrPollNotFound, Message: "Опрос не найден или не активен."},
	ErrPollClosed:    {Code: ErrPollClosed, Message: "Опрос завершён."},
	ErrNoActivePoll:  {Code: ErrNoActivePoll, Message: "[BOT] У тебя нет активных опросов."},

	// 3xxx: Programmer and Data Errors
	ErrBadCallbackPayload: {Code: ErrBadCallbackPayload, Message: "Ошибка."},
	ErrNoPendingRecipient: {Code: ErrNoPendingRecipient, Message: "[BOT] Ошибка: нет получателя."},
	ErrUnknownNotifyField: {Code: ErrUnknownNotifyField, Message: "Неизвестный параметр."},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Что-то пошло не так. Попробуй ещё раз.", Status: http.StatusInternalServerError},
}
