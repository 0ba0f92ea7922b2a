package wenyan

// KeywordKind identifies one grammar keyword. Unlike YANG's single flat
// identifier space, Wenyan's vocabulary is large enough, and shares enough
// prefixes (若 / 若非 / 若其然者 / 若其不然者), that each keyword gets its
// own tag rather than being carried as free-form text.
type KeywordKind int

const (
	_ KeywordKind = iota

	// Declaration / naming
	KwDeclare     // 吾有, 今有
	KwNameIntro   // 名之曰
	KwAlso        // 也 (bare terminator; the 之術也/之物也 tails lex as their own keywords)
	KwYue         // 曰

	// Types (the TYPE token kind's possible values)
	KwTypeNumber // 數
	KwTypeArray  // 列
	KwTypeString // 言
	KwTypeBool   // 爻
	KwTypeObject // 物
	KwTypeUnit   // 元

	// Booleans
	KwBoolYin  // 陰 = false
	KwBoolYang // 陽 = true

	KwIt    // 其
	KwPrint // 書之

	KwSubscript // 之
	KwLength    // 之長
	KwRest      // 其餘

	// Arithmetic
	KwAdd       // 加
	KwSub       // 減
	KwMul       // 乘
	KwDiv       // 除
	KwPrepOf    // 於 (following operand is RHS)
	KwPrepWith  // 以 (following operand is LHS, i.e. swap)
	KwModSuffix // 所餘幾何

	// Logic
	KwEq    // 等於
	KwNeq   // 不等於
	KwGt    // 大於
	KwLt    // 小於
	KwGte   // 不小於
	KwLte   // 不大於
	KwAnd   // 且
	KwOr    // 或
	KwNot   // 變

	// If
	KwIf       // 若
	KwIfTrue   // 若其然者
	KwIfFalse  // 若其不然者
	KwElseIf   // 若非
	KwCondEnd  // 者
	KwLoopEnd  // 云云

	// For
	KwForEnumTimes // 遍 (trailing count unit: 為是 N 遍)
	KwForStart     // 為是
	KwForArrIn     // 之中之物
	KwForArrEach   // 各為
	KwWhileTrue    // 恆為是

	// Function definition
	KwProcType    // 術 (the post-count discriminator for 吾有 N 術)
	KwParamsIntro // 欲行是術
	KwParamGet    // 必先得
	KwRestParam   // 或餘
	KwBodyIntro   // 乃行是術曰
	KwIsCalled    // 是謂
	KwOfProc      // 之術也
	KwOfObj       // 之物也
	KwReturnVal   // 乃得
	KwReturnIt    // 乃得矣
	KwReturnVoid  // 乃歸空無

	// Call
	KwCall // 施

	// Try/throw
	KwTryStart   // 姑妄行此
	KwCatchTyped // 如其有
	KwCatchWhat  // 之禍歟
	KwCatchAll   // 不知何禍歟
	KwTryEnd     // 乃止是遍
	KwThrow      // 嗚呼
	KwOfError    // 之禍

	// Assignment
	KwAssignOf // 昔之
	// the closing 者 before 今 lexes as KwCondEnd, shared with the
	// if-clause grammar; there is no separate token for it here.
	KwAssignNow // 今
	KwAssignIs  // 是矣
	KwDeleted   // 不復存矣

	// Object. The closing 云云 lexes as KwLoopEnd, shared with if/for/macro.
	KwObjBody // 其物如是

	// Import
	KwImportStart // 取
	KwImportSep   // 中
	KwImportNames // 方悟
	KwImportOf    // 之義
	KwImportEnd   // 之書

	// Comments
	KwComment1 // 注曰
	KwComment2 // 疏曰
	KwComment3 // 批曰

	// Macro
	KwMacroFrom // 或云
	KwMacroTo   // 蓋謂

	// Array operations (其 register producers beyond Math; see DESIGN.md)
	KwPush    // 充
	KwInto    // 入
	KwConcat  // 併
	KwWithAnd // 與
)

func (k KeywordKind) String() string {
	if s, ok := keywordName[k]; ok {
		return s
	}
	return "KW?"
}

// keywords is the literal table: exact codepoint sequence -> kind. Multiple
// literals may map to the same kind (吾有 / 今有 both declare).
var keywords = map[string]KeywordKind{
	"吾有":     KwDeclare,
	"今有":     KwDeclare,
	"名之曰":    KwNameIntro,
	"也":      KwAlso,
	"曰":      KwYue,

	"數": KwTypeNumber,
	"列": KwTypeArray,
	"言": KwTypeString,
	"爻": KwTypeBool,
	"物": KwTypeObject,
	"元": KwTypeUnit,

	"陰": KwBoolYin,
	"陽": KwBoolYang,

	"其":  KwIt,
	"書之": KwPrint,

	"之":  KwSubscript,
	"之長": KwLength,
	"其餘": KwRest,

	"加":    KwAdd,
	"減":    KwSub,
	"乘":    KwMul,
	"除":    KwDiv,
	"於":    KwPrepOf,
	"以":    KwPrepWith,
	"所餘幾何": KwModSuffix,

	"等於":  KwEq,
	"不等於": KwNeq,
	"大於":  KwGt,
	"小於":  KwLt,
	"不小於": KwGte,
	"不大於": KwLte,
	"且":   KwAnd,
	"或":   KwOr,
	"變":   KwNot,

	"若其然者":  KwIfTrue,
	"若其不然者": KwIfFalse,
	"若非":    KwElseIf,
	"若":     KwIf,
	"者":     KwCondEnd,
	"云云":    KwLoopEnd,

	"遍":    KwForEnumTimes,
	"為是":   KwForStart,
	"之中之物": KwForArrIn,
	"各為":   KwForArrEach,
	"恆為是":  KwWhileTrue,

	"術":     KwProcType,
	"欲行是術":  KwParamsIntro,
	"必先得":   KwParamGet,
	"或餘":    KwRestParam,
	"乃行是術曰": KwBodyIntro,
	"是謂":    KwIsCalled,
	"之術也":   KwOfProc,
	"之物也":   KwOfObj,
	"乃得矣":   KwReturnIt,
	"乃得":    KwReturnVal,
	"乃歸空無":  KwReturnVoid,

	"施": KwCall,

	"姑妄行此": KwTryStart,
	"如其有":  KwCatchTyped,
	"之禍歟":  KwCatchWhat,
	"不知何禍歟": KwCatchAll,
	"乃止是遍": KwTryEnd,
	"嗚呼":   KwThrow,
	"之禍":   KwOfError,

	"昔之":   KwAssignOf,
	"今":    KwAssignNow,
	"是矣":   KwAssignIs,
	"不復存矣": KwDeleted,

	"其物如是": KwObjBody,

	"取":  KwImportStart,
	"中":  KwImportSep,
	"方悟": KwImportNames,
	"之義": KwImportOf,
	"之書": KwImportEnd,

	"注曰": KwComment1,
	"疏曰": KwComment2,
	"批曰": KwComment3,

	"或云": KwMacroFrom,
	"蓋謂": KwMacroTo,

	"充": KwPush,
	"入": KwInto,
	"併": KwConcat,
	"與": KwWithAnd,
}

var keywordName = func() map[KeywordKind]string {
	m := make(map[KeywordKind]string, len(keywords))
	for lit, k := range keywords {
		if _, ok := m[k]; !ok {
			m[k] = lit
		}
	}
	return m
}()

// trieNode is one node of the keyword trie used for longest-match scanning.
type trieNode struct {
	children map[rune]*trieNode
	kind     KeywordKind
	terminal bool
}

var keywordTrie = buildTrie(keywords)

func buildTrie(table map[string]KeywordKind) *trieNode {
	root := &trieNode{children: map[rune]*trieNode{}}
	for lit, kind := range table {
		n := root
		for _, r := range lit {
			child, ok := n.children[r]
			if !ok {
				child = &trieNode{children: map[rune]*trieNode{}}
				n.children[r] = child
			}
			n = child
		}
		n.terminal = true
		n.kind = kind
	}
	return root
}

// longestKeyword returns the kind and rune-length of the longest keyword
// literal that is a prefix of runes, or ok=false if none matches.
func longestKeyword(runes []rune) (kind KeywordKind, length int, ok bool) {
	n := keywordTrie
	bestLen := 0
	var bestKind KeywordKind
	for i, r := range runes {
		child, found := n.children[r]
		if !found {
			break
		}
		n = child
		if n.terminal {
			bestLen = i + 1
			bestKind = n.kind
			ok = true
		}
	}
	return bestKind, bestLen, ok
}
