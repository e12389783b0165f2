// internal/irc/numerics.go
package irc

// ReplyCode is a three-digit numeric reply or error code. The table below
// covers the RFC 1459/2812 set; unknown codes still parse into a Numeric
// event, they just carry no name here.
type ReplyCode int

const (
	RplWelcome  ReplyCode = 1
	RplYourHost ReplyCode = 2
)

const (
	RplTraceLink       ReplyCode = 200
	RplTraceConnecting ReplyCode = 201
	RplTraceHandshake  ReplyCode = 202
	RplTraceUnknown    ReplyCode = 203
	RplTraceOperator   ReplyCode = 204
	RplTraceUser       ReplyCode = 205
	RplTraceServer     ReplyCode = 206
	RplTraceNewType    ReplyCode = 208
	RplTraceLog        ReplyCode = 261
	RplStatsLinkInfo   ReplyCode = 211
	RplStatsCommands   ReplyCode = 212
	RplStatsCLine      ReplyCode = 213
	RplStatsNLine      ReplyCode = 214
	RplStatsILine      ReplyCode = 215
	RplStatsKLine      ReplyCode = 216
	RplStatsYLine      ReplyCode = 218
	RplEndOfStats      ReplyCode = 219
	RplStatsLLine      ReplyCode = 241
	RplStatsUptime     ReplyCode = 242
	RplStatsOLine      ReplyCode = 243
	RplStatsHLine      ReplyCode = 244
	RplUModeIs         ReplyCode = 221
	RplLuserClient     ReplyCode = 251
	RplLuserOp         ReplyCode = 252
	RplLuserUnknown    ReplyCode = 253
	RplLuserChannels   ReplyCode = 254
	RplLuserMe         ReplyCode = 255
	RplAdminMe         ReplyCode = 256
	RplAdminLoc1       ReplyCode = 257
	RplAdminLoc2       ReplyCode = 258
	RplAdminEmail      ReplyCode = 259
)

const (
	RplNone           ReplyCode = 300
	RplUserHost       ReplyCode = 302
	RplIsOn           ReplyCode = 303
	RplAway           ReplyCode = 301
	RplUnAway         ReplyCode = 305
	RplNowAway        ReplyCode = 306
	RplWhoisUser      ReplyCode = 311
	RplWhoisServer    ReplyCode = 312
	RplWhoisOperator  ReplyCode = 313
	RplWhoisIdle      ReplyCode = 317
	RplEndOfWhois     ReplyCode = 318
	RplWhoisChannels  ReplyCode = 319
	RplWhoWasUser     ReplyCode = 314
	RplEndOfWhoWas    ReplyCode = 369
	RplList           ReplyCode = 322
	RplListEnd        ReplyCode = 323
	RplChannelModeIs  ReplyCode = 324
	RplNoTopic        ReplyCode = 331
	RplTopic          ReplyCode = 332
	RplInviting       ReplyCode = 341
	RplSummoning      ReplyCode = 342
	RplVersion        ReplyCode = 351
	RplWhoReply       ReplyCode = 352
	RplEndOfWho       ReplyCode = 315
	RplNamReply       ReplyCode = 353
	RplEndOfNames     ReplyCode = 366
	RplLinks          ReplyCode = 364
	RplEndOfLinks     ReplyCode = 365
	RplBanList        ReplyCode = 367
	RplEndOfBanList   ReplyCode = 368
	RplInfo           ReplyCode = 371
	RplEndOfInfo      ReplyCode = 374
	RplMotdStart      ReplyCode = 375
	RplMotd           ReplyCode = 372
	RplEndOfMotd      ReplyCode = 376
	RplYoureOper      ReplyCode = 381
	RplRehashing      ReplyCode = 382
	RplTime           ReplyCode = 391
	RplUsersStart     ReplyCode = 392
	RplUsers          ReplyCode = 393
	RplEndOfUsers     ReplyCode = 394
	RplNoUsers        ReplyCode = 395
)

const (
	ErrNoSuchNick       ReplyCode = 401
	ErrNoSuchServer     ReplyCode = 402
	ErrNoSuchChannel    ReplyCode = 403
	ErrCannotSendToChan ReplyCode = 404
	ErrTooManyChannels  ReplyCode = 405
	ErrWasNoSuchNick    ReplyCode = 406
	ErrTooManyTargets   ReplyCode = 407
	ErrNoOrigin         ReplyCode = 409
	ErrNoRecipient      ReplyCode = 411
	ErrNoTextToSend     ReplyCode = 412
	ErrNoTopLevel       ReplyCode = 413
	ErrWildTopLevel     ReplyCode = 414
	ErrUnknownCommand   ReplyCode = 421
	ErrNoMotd           ReplyCode = 422
	ErrNoAdminInfo      ReplyCode = 423
	ErrFileError        ReplyCode = 424
	ErrNoNicknameGiven  ReplyCode = 431
	ErrErroneusNickname ReplyCode = 432
	ErrNicknameInUse    ReplyCode = 433
	ErrNickCollision    ReplyCode = 436
	ErrNotOnChannel     ReplyCode = 442
	ErrUserOnChannel    ReplyCode = 443
	ErrNoLogin          ReplyCode = 444
	ErrSummonDisabled   ReplyCode = 445
	ErrUsersDisabled    ReplyCode = 446
	ErrNotRegistered    ReplyCode = 451
	ErrNeedMoreParams   ReplyCode = 461
	ErrAlreadyRegistred ReplyCode = 462
	ErrPasswdMismatch   ReplyCode = 464
	ErrYoureBannedCreep ReplyCode = 465
	ErrKeySet           ReplyCode = 467
	ErrChannelIsFull    ReplyCode = 471
	ErrUnknownMode      ReplyCode = 472
	ErrInviteOnlyChan   ReplyCode = 473
	ErrBannedFromChan   ReplyCode = 474
	ErrBadChannelKey    ReplyCode = 475
	ErrNoPrivileges     ReplyCode = 481
	ErrChanOPrivsNeeded ReplyCode = 482
	ErrCantKillServer   ReplyCode = 483
	ErrNoOperHost       ReplyCode = 491
)

const (
	ErrUModeUnknownFlag ReplyCode = 501
	ErrUsersDontMatch   ReplyCode = 502
)
