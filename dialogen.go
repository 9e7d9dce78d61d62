// package dialogen
// dialogen generates synthetic multi-turn dialogues by prompting a
// chat-completion model twice per scenario: once for the user questions and
// once for the matching answers.
//
//	 To avoid package loops:
//		   dialogen uses the backends in dialogen/llm
//		   dialogen and dialogen/llm share dialogen/logs and dialogen/utils
//
// dialogue generation: dialogen
// model backends:      dialogen/llm
// logging:             dialogen/logs
// templates:           dialogen/utils
package dialogen
