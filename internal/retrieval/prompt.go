package retrieval

import "strings"

// SystemInstruction is the fixed role given to the answer model.
const SystemInstruction = "도움이 되는 친절한 육아 전문가입니다."

// NoResultMessage is the user-facing text for the defined empty-retrieval
// outcome.
const NoResultMessage = "관련된 정보를 찾을 수 없습니다."

const promptTemplate = `당신은 육아 및 출산 전문가입니다. 아래의 [정보]를 바탕으로 사용자의 질문에 답변해주세요.

[정보]는 유튜브 영상의 제목과 설명(Description)입니다. 자막 전체가 아닐 수 있습니다.
따라서 정보가 충분하지 않다면, 제공된 [정보]의 영상 제목을 인용하여 "이 영상에서 관련 내용을 확인하실 수 있습니다"라고 안내하고,
일반적인 의학 지식을 덧붙여 설명해주세요.

[정보]
{{context}}

[질문]
{{query}}

[답변]`

// BuildPrompt fills the answer prompt's two slots. Kept separate from the
// model call so the template can be tested on its own.
func BuildPrompt(contextText, query string) string {
	p := strings.ReplaceAll(promptTemplate, "{{context}}", contextText)
	return strings.ReplaceAll(p, "{{query}}", query)
}

// BuildContext joins retrieved document texts into the prompt's [정보] block.
func BuildContext(texts []string) string {
	return strings.Join(texts, "\n\n")
}
